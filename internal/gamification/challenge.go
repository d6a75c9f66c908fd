package gamification

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

const (
	JoinCodeLength   = 8
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TotalChallengeDays is ceil((end - start) / 1 day), never below 1.
func TotalChallengeDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ParticipantProgress converts completed days into a 0..100 percentage.
func ParticipantProgress(completedDays, totalDays int) int {
	if totalDays < 1 {
		totalDays = 1
	}
	pct := math.Min(100, float64(completedDays)/float64(totalDays)*100)
	return int(math.Round(pct))
}

// ContainsDay reports whether day already appears in days (calendar day in loc).
func ContainsDay(days []time.Time, day time.Time, loc *time.Location) bool {
	for _, d := range days {
		if SameDay(d, day, loc) {
			return true
		}
	}
	return false
}

// GenerateJoinCode draws an 8 character uppercase alphanumeric code.
func GenerateJoinCode() (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	code := make([]byte, JoinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
