package model

import "github.com/google/uuid"

// Pace selects the pause between students during an attendance call.
type Pace int

const (
	PaceQuick Pace = iota
	PaceNormal
	PaceDetailed
)

// Units returns the number of delay units paused between two students.
func (p Pace) Units() int {
	switch p {
	case PaceQuick:
		return 1
	case PaceDetailed:
		return 5
	default:
		return 3
	}
}

func (p Pace) String() string {
	switch p {
	case PaceQuick:
		return "quick"
	case PaceDetailed:
		return "detailed"
	default:
		return "normal"
	}
}

// SessionResult describes a completed attendance call.
type SessionResult struct {
	ID      uuid.UUID
	Date    string
	Pace    Pace
	Records AttendanceDay
}
