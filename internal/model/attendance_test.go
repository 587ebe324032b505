package model

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"p", StatusPresent, true},
		{" Present ", StatusPresent, true},
		{"A", StatusAbsent, true},
		{"absent", StatusAbsent, true},
		{"l", StatusLate, true},
		{"LATE", StatusLate, true},
		{"r", "", false},
		{"", "", false},
		{"excused", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAttendanceDay_Count(t *testing.T) {
	day := AttendanceDay{
		"1": {Status: StatusPresent},
		"2": {Status: StatusPresent},
		"3": {Status: StatusAbsent},
	}
	if day.Count(StatusPresent) != 2 || day.Count(StatusAbsent) != 1 || day.Count(StatusLate) != 0 {
		t.Errorf("unexpected counts for %+v", day)
	}
}

func TestState_NormalizeFillsNilMaps(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`{"attendance_records": {"2024-01-01": null}}`), &s); err != nil {
		t.Fatal(err)
	}
	s.Normalize()
	if s.AttendanceRecords["2024-01-01"] == nil {
		t.Error("nil day should be replaced with an empty map")
	}

	var empty State
	empty.Normalize()
	if empty.AttendanceRecords == nil {
		t.Error("nil records map should be created")
	}
}

func TestPace_Units(t *testing.T) {
	if PaceQuick.Units() != 1 || PaceNormal.Units() != 3 || PaceDetailed.Units() != 5 {
		t.Error("unexpected pace units")
	}
}
