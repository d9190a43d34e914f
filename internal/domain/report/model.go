package report

import "time"

// DailyReport summarises one baby's day.
type DailyReport struct {
	ID                string    `json:"id"`
	BabyID            string    `json:"baby_id"`
	Date              time.Time `json:"date"`
	TotalSleepMinutes int       `json:"total_sleep_minutes"`
	LongestNapMinutes int       `json:"longest_nap_minutes"`
	TotalFeeds        int       `json:"total_feeds"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Summary is the computed part of a report.
type Summary struct {
	TotalSleepMinutes int `json:"total_sleep_minutes"`
	LongestNapMinutes int `json:"longest_nap_minutes"`
	TotalFeeds        int `json:"total_feeds"`
}
