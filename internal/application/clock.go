package application

import (
	"time"

	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// Clock is the time source for "today" defaults.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// today returns the calendar day of c in loc as midnight UTC.
func today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return helpers.DateOf(c.Now().In(loc))
}
