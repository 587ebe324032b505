package model

import "strings"

// Status is the attendance status recorded for one student on one date.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// ParseStatus maps an operator token (p/present, a/absent, l/late) to a Status.
func ParseStatus(token string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "p", "present":
		return StatusPresent, true
	case "a", "absent":
		return StatusAbsent, true
	case "l", "late":
		return StatusLate, true
	}
	return "", false
}

// AttendanceRecord is the status of one student on one date. The student ID
// is the key of the enclosing AttendanceDay.
type AttendanceRecord struct {
	Status     Status    `json:"status"`
	MarkedTime ClockTime `json:"marked_time"`
}

// AttendanceDay maps student ID to the record taken for a single date.
type AttendanceDay map[string]AttendanceRecord

// Count returns the number of records with the given status.
func (d AttendanceDay) Count(status Status) int {
	n := 0
	for _, rec := range d {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// State is the whole persisted document: the roster and every attendance day
// keyed by date (DateLayout).
type State struct {
	Students          Roster                   `json:"students"`
	AttendanceRecords map[string]AttendanceDay `json:"attendance_records"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{AttendanceRecords: make(map[string]AttendanceDay)}
}

// Normalize fills nil maps left behind by a partial document.
func (s *State) Normalize() {
	if s.AttendanceRecords == nil {
		s.AttendanceRecords = make(map[string]AttendanceDay)
	}
	for date, day := range s.AttendanceRecords {
		if day == nil {
			s.AttendanceRecords[date] = AttendanceDay{}
		}
	}
}

// Summary is the per-status breakdown of one attendance day.
type Summary struct {
	Date        string
	Total       int
	Present     int
	Absent      int
	Late        int
	AbsentNames []string
}

// Report lists the records of one date for students still on the roster.
type Report struct {
	Date string
	Rows []ReportRow
}

// ReportRow is one line of the attendance report for a date.
type ReportRow struct {
	StudentID  string
	Name       string
	Status     Status
	MarkedTime string
}
