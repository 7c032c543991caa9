package economy

import (
	"math"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// DecayStep returns the stake after one decay cycle. Stakes shrink by 20%
// per step, floored, and bottom out at 1 token.
func DecayStep(stake int) int {
	next := int(math.Floor(float64(stake) * 0.80))
	if next < 1 {
		return 1
	}
	return next
}

// DecayEligible reports whether a task should lose value this cycle. Only
// live tasks with a future deadline qualify, and only after they have been
// sitting for more than one full interval. Tasks already at 1 token are
// left alone.
func DecayEligible(task models.Task, now time.Time, interval time.Duration) bool {
	if task.Status != models.TaskPending && task.Status != models.TaskInProgress {
		return false
	}
	if !task.Deadline.After(now) {
		return false
	}
	if now.Sub(task.CreatedAt) <= interval {
		return false
	}
	return task.TokenStake > 1
}
