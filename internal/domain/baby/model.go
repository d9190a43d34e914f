package baby

import "time"

// Baby is a child tracked by a caregiver account.
type Baby struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	BirthDate        time.Time `json:"birth_date"`
	BirthWeightGrams *int      `json:"birth_weight_grams,omitempty"`
	Gender           string    `json:"gender"`
	CreatedAt        time.Time `json:"created_at"`
}

// AgeInDays returns the number of whole calendar days between the birth date
// and the UTC date of now.
func (b *Baby) AgeInDays(now time.Time) int {
	return DaysBetween(b.BirthDate, now)
}

// DaysBetween counts calendar days from the UTC date of from to the UTC date of to.
func DaysBetween(from, to time.Time) int {
	f := Date(from)
	t := Date(to)
	return int(t.Sub(f).Hours() / 24)
}

// Date truncates t to midnight of its UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
