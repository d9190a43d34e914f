package routine

// WakeWindowMinutes returns the expected awake time between naps for a baby
// of the given age. Brackets include their lower bound and exclude the upper.
func WakeWindowMinutes(ageDays int) int {
	switch {
	case ageDays < 30:
		return 50
	case ageDays < 90:
		return 60
	case ageDays < 150:
		return 75
	case ageDays < 210:
		return 90
	case ageDays < 270:
		return 105
	case ageDays < 360:
		return 120
	default:
		return 150
	}
}

// NapsPerDay returns how many naps to project for the day. Brackets include
// their upper bound.
func NapsPerDay(ageDays int) int {
	switch {
	case ageDays <= 90:
		return 6
	case ageDays <= 180:
		return 4
	case ageDays <= 270:
		return 3
	case ageDays <= 365:
		return 2
	case ageDays <= 730:
		return 1
	default:
		return 1
	}
}

// NapDurationFallback is the nap length used when there is not enough
// history to average. Brackets include their upper bound, unlike
// WakeWindowMinutes.
func NapDurationFallback(ageDays int) int {
	switch {
	case ageDays <= 90:
		return 90
	case ageDays <= 180:
		return 90
	case ageDays <= 270:
		return 90
	case ageDays <= 365:
		return 90
	case ageDays <= 730:
		return 120
	default:
		return 90
	}
}
