package economy

import (
	"math"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// CreditFactor scales stakes by course weight. A 5-credit course is the
// baseline (factor 1.0); weights are clamped to 1-10 before dividing.
func CreditFactor(creditWeight int) float64 {
	if creditWeight < 1 {
		creditWeight = 1
	}
	if creditWeight > 10 {
		creditWeight = 10
	}
	return float64(creditWeight) / 5
}

// UrgencyMultiplier returns the deadline-pressure multiplier and its label.
// Distance to the deadline is measured in fractional days.
func UrgencyMultiplier(now, deadline time.Time) (float64, string) {
	days := deadline.Sub(now).Hours() / 24

	switch {
	case days < 3:
		return 2.0, "critical"
	case days < 7:
		return 1.5, "high"
	case days <= 14:
		return 1.25, "moderate"
	default:
		return 1.0, "normal"
	}
}

// BaseStake returns the difficulty-based token stake before multipliers.
func BaseStake(difficulty models.Difficulty) int {
	switch difficulty {
	case models.DifficultyEasy:
		return 5
	case models.DifficultyHard:
		return 20
	default:
		return 10
	}
}

// PriceTask computes the token stake for a task from its difficulty, the
// course credit weight and how close the deadline is. The reward always
// mirrors the stake.
func PriceTask(difficulty models.Difficulty, creditWeight int, now, deadline time.Time) (int, string) {
	urgency, label := UrgencyMultiplier(now, deadline)
	stake := int(math.Round(float64(BaseStake(difficulty)) * CreditFactor(creditWeight) * urgency))
	return stake, label
}

// PriceTaskNoUrgency prices routine work (fallback plans, revision tasks)
// where no exam date applies. Urgency is fixed at 1.0.
func PriceTaskNoUrgency(difficulty models.Difficulty, creditWeight int) int {
	return int(math.Round(float64(BaseStake(difficulty)) * CreditFactor(creditWeight)))
}

// ReattemptStake discounts the entry stake for repeat quiz attempts. Each
// retry pays 60% of the previous attempt, never below 1 token.
func ReattemptStake(baseStake, attemptNumber int) int {
	if attemptNumber < 1 {
		attemptNumber = 1
	}
	stake := int(math.Ceil(float64(baseStake) * math.Pow(0.6, float64(attemptNumber-1))))
	if stake < 1 {
		return 1
	}
	return stake
}
