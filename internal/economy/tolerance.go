package economy

import (
	"math"
	"time"
)

// ToleranceCap returns how many days a user may go inactive before the
// bleed starts. Grace grows logarithmically with the longest streak the
// user has ever held, and is never below 2 days.
func ToleranceCap(longestStreak int) int {
	if longestStreak < 0 {
		longestStreak = 0
	}
	days := int(math.Floor(2 + math.Log(1+float64(longestStreak))*3))
	if days < 2 {
		return 2
	}
	return days
}

// DaysAbsent counts whole days elapsed since the user's last active date.
func DaysAbsent(lastActive, now time.Time) int {
	if !now.After(lastActive) {
		return 0
	}
	return int(math.Floor(now.Sub(lastActive).Hours() / 24))
}

// BleedAmount is the token penalty for a given number of days past the
// tolerance cap. It grows superlinearly so long absences hurt more per day.
// Callers clamp the result to the user's balance.
func BleedAmount(daysOver int) int {
	if daysOver <= 0 {
		return 0
	}
	return int(math.Ceil(2 * math.Pow(float64(daysOver), 1.5)))
}
