package entity

import (
	"errors"
	"strings"
	"time"
)

// Status of a Progress record. STARTED is reserved: it is counted by
// statistics but nothing in the service writes it.
type Status string

const (
	StatusStarted  Status = "STARTED"
	StatusFinished Status = "FINISHED"
)

var ErrUnknownStatus = errors.New("unknown status")

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusStarted, StatusFinished:
		return st, nil
	}
	return "", ErrUnknownStatus
}

func (s Status) String() string { return string(s) }

// Progress records that an activity was completed on a calendar day.
// FinishDate is always midnight UTC of that day.
type Progress struct {
	ID            string
	ActivityID    string
	ActivityTitle string
	FinishDate    time.Time
	Status        Status
	CreatedAt     time.Time
}

// CompletionStats aggregates a user's progress rows by status.
type CompletionStats struct {
	TotalFinished  int64   `json:"total_finished"`
	TotalStarted   int64   `json:"total_started"`
	CompletionRate float64 `json:"completion_rate"`
}
