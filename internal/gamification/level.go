// Package gamification holds the pure XP, level, streak and challenge progress
// rules. Nothing here touches persistence; services load documents, call these
// functions and write the results back.
package gamification

import (
	"math"

	"github.com/Dias221467/mindbloom/pkg/apperror"
)

// LevelPolicy returns how much XP is needed to leave a level.
type LevelPolicy interface {
	Name() string
	XPForNextLevel(level int) int
}

// LinearPolicy is the awarding policy: Base * level.
type LinearPolicy struct {
	Base int
}

func (p LinearPolicy) Name() string { return "linear" }

func (p LinearPolicy) XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return p.Base * level
}

// ExponentialPolicy is used only for display estimates: floor(Base * Growth^(level-1)).
type ExponentialPolicy struct {
	Base   int
	Growth float64
}

func (p ExponentialPolicy) Name() string { return "exponential" }

func (p ExponentialPolicy) XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(p.Base) * math.Pow(p.Growth, float64(level-1))))
}

// ApplyXP adds amount to the in-level xp and carries every full threshold into
// a level-up until xp is below the next threshold.
func ApplyXP(policy LevelPolicy, level, xp, amount int) (int, int, error) {
	if amount <= 0 {
		return level, xp, apperror.Validationf("xp award must be positive, got %d", amount)
	}
	if level < 1 {
		level = 1
	}
	if xp < 0 {
		xp = 0
	}

	xp += amount
	for {
		needed := policy.XPForNextLevel(level)
		if needed <= 0 {
			return level, xp, apperror.Validationf("%s level policy returned non-positive threshold for level %d", policy.Name(), level)
		}
		if xp < needed {
			return level, xp, nil
		}
		xp -= needed
		level++
	}
}

// LevelEstimate describes where a lifetime XP total lands under a policy.
type LevelEstimate struct {
	Policy          string  `json:"policy"`
	Level           int     `json:"level"`
	LevelXP         int     `json:"levelXp"`
	XPForNextLevel  int     `json:"xpForNextLevel"`
	Progress        float64 `json:"progress"`
	TotalXPRequired int     `json:"totalXpRequired"`
}

// EstimateLevel walks the policy thresholds from level 1 for a lifetime total.
func EstimateLevel(policy LevelPolicy, totalXP int) LevelEstimate {
	level := 1
	spent := 0
	needed := policy.XPForNextLevel(level)
	for needed > 0 && totalXP >= spent+needed {
		spent += needed
		level++
		needed = policy.XPForNextLevel(level)
	}

	levelXP := totalXP - spent
	progress := 0.0
	if needed > 0 {
		progress = math.Min(100, float64(levelXP)/float64(needed)*100)
	}

	return LevelEstimate{
		Policy:          policy.Name(),
		Level:           level,
		LevelXP:         levelXP,
		XPForNextLevel:  needed,
		Progress:        progress,
		TotalXPRequired: spent + needed,
	}
}

// ProgressPercent is the rounded share of the current threshold already earned.
func ProgressPercent(policy LevelPolicy, level, xp int) int {
	needed := policy.XPForNextLevel(level)
	if needed <= 0 {
		return 0
	}
	return int(math.Round(float64(xp) / float64(needed) * 100))
}
