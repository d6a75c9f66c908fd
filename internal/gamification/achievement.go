package gamification

import (
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
)

// ApplyProgress adds delta to the achievement, capped at its target. It reports
// whether the stored value changed; completed achievements never change.
func ApplyProgress(a *models.Achievement, delta int) (bool, error) {
	if delta <= 0 {
		return false, apperror.Validationf("progress delta must be positive, got %d", delta)
	}
	if a.IsCompleted {
		return false, nil
	}
	next := a.CurrentValue + delta
	if next > a.Target {
		next = a.Target
	}
	if next == a.CurrentValue {
		return false, nil
	}
	a.CurrentValue = next
	return true, nil
}

// RaiseProgress moves the value up to value (capped at target) and never lowers it.
func RaiseProgress(a *models.Achievement, value int) bool {
	if a.IsCompleted || value <= a.CurrentValue {
		return false
	}
	if value > a.Target {
		value = a.Target
	}
	if value == a.CurrentValue {
		return false
	}
	a.CurrentValue = value
	return true
}

// CheckCompletion flips the achievement to completed on first reaching its
// target. It returns true only for that first crossing.
func CheckCompletion(a *models.Achievement, now time.Time) bool {
	if a.IsCompleted || a.CurrentValue < a.Target {
		return false
	}
	a.IsCompleted = true
	a.CompletedDate = &now
	return true
}
