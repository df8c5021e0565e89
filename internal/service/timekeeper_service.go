package service

import (
	"math"
	"time"
)

// TimekeeperService answers every time-limit question for progress records.
// All methods are pure: "now" is always an explicit argument, never read from
// the clock, so expiry scenarios are reproducible in tests.
type TimekeeperService interface {
	// IsExpired reports whether the time limit has elapsed as of now.
	IsExpired(startedAt time.Time, timeLimitMinutes int, now time.Time) bool
	// RemainingSeconds is the whole seconds left before the deadline, never
	// negative.
	RemainingSeconds(startedAt time.Time, timeLimitMinutes int, now time.Time) int
	// ProgressPercentage maps answered/total to [0, 100]. A test with no
	// questions reports 0.
	ProgressPercentage(answered, total int) int
}

type timekeeperService struct{}

func NewTimekeeperService() TimekeeperService {
	return &timekeeperService{}
}

func deadline(startedAt time.Time, timeLimitMinutes int) time.Time {
	return startedAt.Add(time.Duration(timeLimitMinutes) * time.Minute)
}

func (s *timekeeperService) IsExpired(startedAt time.Time, timeLimitMinutes int, now time.Time) bool {
	return !now.Before(deadline(startedAt, timeLimitMinutes))
}

func (s *timekeeperService) RemainingSeconds(startedAt time.Time, timeLimitMinutes int, now time.Time) int {
	remaining := deadline(startedAt, timeLimitMinutes).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}

func (s *timekeeperService) ProgressPercentage(answered, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(answered) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
