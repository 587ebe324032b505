package response

import "fmt"

// ErrCode is a typed error code enum for consistent operator-facing messages.
type ErrCode string

const (
	// ─── Roster ────────────────────────────────────────────────────────
	ErrDuplicateStudent ErrCode = "DUPLICATE_STUDENT"
	ErrStudentNotFound  ErrCode = "STUDENT_NOT_FOUND"
	ErrEmptyRoster      ErrCode = "EMPTY_ROSTER"
	ErrNoStudents       ErrCode = "NO_STUDENTS"
	ErrMissingStudent   ErrCode = "MISSING_STUDENT_FIELDS"
	ErrMissingStudentID ErrCode = "MISSING_STUDENT_ID"

	// ─── Attendance ────────────────────────────────────────────────────
	ErrNoRecord        ErrCode = "NO_RECORD"
	ErrRecordExists    ErrCode = "RECORD_EXISTS"
	ErrInvalidResponse ErrCode = "INVALID_RESPONSE"
	ErrInvalidDate     ErrCode = "INVALID_DATE"

	// ─── Voice ─────────────────────────────────────────────────────────
	ErrRateOutOfRange   ErrCode = "RATE_OUT_OF_RANGE"
	ErrVolumeOutOfRange ErrCode = "VOLUME_OUT_OF_RANGE"
	ErrInvalidNumber    ErrCode = "INVALID_NUMBER"

	// ─── Menu ──────────────────────────────────────────────────────────
	ErrInvalidChoice ErrCode = "INVALID_CHOICE"

	// ─── Storage ───────────────────────────────────────────────────────
	ErrSaveFailed ErrCode = "SAVE_FAILED"
)

// GetMessage returns the message template for a given error code.
// Templates with verbs are filled in by Format.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Roster ────────────────────────────────────────────────────────
	case ErrDuplicateStudent:
		return "Student with ID %s already exists!"
	case ErrStudentNotFound:
		return "Student with ID %s not found!"
	case ErrEmptyRoster:
		return "No students registered in the system!"
	case ErrNoStudents:
		return "No students registered!"
	case ErrMissingStudent:
		return "Please provide both ID and name!"
	case ErrMissingStudentID:
		return "Please provide Student ID!"

	// ─── Attendance ────────────────────────────────────────────────────
	case ErrNoRecord:
		return "No attendance records found for %s"
	case ErrRecordExists:
		return "Attendance for %s already exists!"
	case ErrInvalidResponse:
		return "Invalid input! Please enter p, a, l, or r"
	case ErrInvalidDate:
		return "Invalid date format! Use YYYY-MM-DD"

	// ─── Voice ─────────────────────────────────────────────────────────
	case ErrRateOutOfRange:
		return "Rate must be between 50 and 300"
	case ErrVolumeOutOfRange:
		return "Volume must be between 0.0 and 1.0"
	case ErrInvalidNumber:
		return "Invalid input! Please enter valid numbers."

	// ─── Menu ──────────────────────────────────────────────────────────
	case ErrInvalidChoice:
		return "Invalid choice! Please enter a number between 1-11."

	// ─── Storage ───────────────────────────────────────────────────────
	case ErrSaveFailed:
		return "Could not save attendance data: %v"
	default:
		return "An unexpected error occurred."
	}
}

// Format fills the message template of code with args.
func Format(code ErrCode, args ...interface{}) string {
	if len(args) == 0 {
		return GetMessage(code)
	}
	return fmt.Sprintf(GetMessage(code), args...)
}
