package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the format of attendance dates and date prompts.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the format new Student.AddedDate values are written in.
	DateTimeLayout = "2006-01-02 15:04:05"
	// ClockLayout is the format new AttendanceRecord.MarkedTime values are written in.
	ClockLayout = "15:04:05"
)

// DateTime is a registration timestamp. Values written by this program use
// DateTimeLayout; values read from an existing document are kept verbatim so
// a timestamp in another format survives a load and save unchanged.
type DateTime string

// NewDateTime formats t with DateTimeLayout.
func NewDateTime(t time.Time) DateTime { return DateTime(t.Format(DateTimeLayout)) }

func (d DateTime) String() string { return string(d) }

// Time parses the value with DateTimeLayout. ok is false for text in any other format.
func (d DateTime) Time() (t time.Time, ok bool) {
	t, err := time.ParseInLocation(DateTimeLayout, string(d), time.Local)
	return t, err == nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s, err := unmarshalText(data)
	if err != nil {
		return fmt.Errorf("added_date: %w", err)
	}
	*d = DateTime(s)
	return nil
}

// ClockTime is the time of day a record was marked. The date is implied by
// the AttendanceDay that holds the record. Like DateTime, text read from a
// document is kept verbatim.
type ClockTime string

// NewClockTime formats t with ClockLayout.
func NewClockTime(t time.Time) ClockTime { return ClockTime(t.Format(ClockLayout)) }

func (c ClockTime) String() string { return string(c) }

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	s, err := unmarshalText(data)
	if err != nil {
		return fmt.Errorf("marked_time: %w", err)
	}
	*c = ClockTime(s)
	return nil
}

// unmarshalText accepts a JSON string or null.
func unmarshalText(data []byte) (string, error) {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}
