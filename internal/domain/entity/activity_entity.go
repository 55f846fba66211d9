package entity

import (
	"errors"
	"strings"
	"time"
)

// Frequency is the advisory recurrence of an Activity.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// ErrUnknownFrequency is returned by ParseFrequency for values outside the enum.
var ErrUnknownFrequency = errors.New("unknown frequency")

// Frequencies lists every valid Frequency in declaration order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}
}

// ParseFrequency matches s case-insensitively against the enum.
// Surrounding whitespace is ignored; anything else is rejected.
func ParseFrequency(s string) (Frequency, error) {
	want := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range Frequencies() {
		if f == want {
			return f, nil
		}
	}
	return "", ErrUnknownFrequency
}

func (f Frequency) String() string { return string(f) }

// Activity is a recurring task owned by exactly one user.
type Activity struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Frequency   Frequency
	StartDate   time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
