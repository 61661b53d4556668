// Package validity derives the registration status of a chainsaw from its
// acquisition date. Every surface that shows or filters by status goes through
// this package.
package validity

import (
	"math"
	"time"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusExpiring Status = "EXPIRING"
	StatusExpired  Status = "EXPIRED"
)

const (
	ValidYears         = 2
	ExpiringWindowDays = 30
)

var AllStatuses = []Status{StatusActive, StatusExpiring, StatusExpired}

// Validity is the derived view of a registration at a given instant.
type Validity struct {
	ValidUntil    time.Time `json:"valid_until"`
	Status        Status    `json:"status"`
	DaysRemaining int       `json:"days_remaining"`
}

// ValidUntil adds two calendar years to the acquisition date. A day that does
// not exist in the target month clamps to the month's last day, the same way
// PostgreSQL adds an interval, so Feb 29 maps to Feb 28.
func ValidUntil(dateAcquired time.Time) time.Time {
	until := dateAcquired.AddDate(ValidYears, 0, 0)
	if until.Day() != dateAcquired.Day() {
		until = until.AddDate(0, 0, -until.Day())
	}
	return until
}

func Compute(dateAcquired, now time.Time) Validity {
	until := ValidUntil(dateAcquired)
	left := until.Sub(now)

	status := StatusActive
	switch {
	case now.After(until):
		status = StatusExpired
	case !until.After(ExpiringBound(now)):
		status = StatusExpiring
	}

	return Validity{
		ValidUntil:    until,
		Status:        status,
		DaysRemaining: int(math.Ceil(left.Hours() / 24)),
	}
}

// ExpiringBound is the last valid-until instant that still counts as EXPIRING
// at now. Anything later is ACTIVE; anything before now is EXPIRED.
func ExpiringBound(now time.Time) time.Time {
	return now.Add(ExpiringWindowDays * 24 * time.Hour)
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
