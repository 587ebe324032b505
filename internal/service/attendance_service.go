package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/repository"
	"github.com/stemsi/voice-attendance/internal/response"
	"github.com/stemsi/voice-attendance/internal/speech"
	"github.com/stemsi/voice-attendance/internal/validator"
)

var (
	ErrInvalidStudent      = errors.New("invalid student details")
	ErrDuplicateStudent    = errors.New("student already registered")
	ErrStudentNotFound     = errors.New("student not found")
	ErrEmptyRoster         = errors.New("no students registered")
	ErrNoRecord            = errors.New("no attendance record for date")
	ErrOverwriteDeclined   = errors.New("overwrite of existing attendance declined")
	ErrInvalidVoiceSetting = errors.New("voice setting out of range")
)

// Prompter shows a label to the operator and returns one trimmed line of input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// AttendanceService owns the roster and attendance days in memory and drives
// the voice attendance call. Every mutation is followed by a full save.
// It is not safe for concurrent use.
type AttendanceService struct {
	store    repository.Store
	state    *model.State
	speaker  speech.Speaker
	prompter Prompter
	out      io.Writer
	unit     time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	log      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService over an already loaded state.
// unit is the length of one pacing unit between announcements.
func NewAttendanceService(
	store repository.Store,
	state *model.State,
	speaker speech.Speaker,
	prompter Prompter,
	out io.Writer,
	unit time.Duration,
	log zerolog.Logger,
) *AttendanceService {
	if state == nil {
		state = model.NewState()
	}
	state.Normalize()

	return &AttendanceService{
		store:    store,
		state:    state,
		speaker:  speaker,
		prompter: prompter,
		out:      out,
		unit:     unit,
		now:      time.Now,
		sleep:    sleepContext,
		log:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// Announce prints text on the console and speaks it. Speech failures are
// logged and otherwise ignored.
func (s *AttendanceService) Announce(ctx context.Context, text string) {
	fmt.Fprintf(s.out, "🔊 %s\n", text)
	if err := s.speaker.Speak(ctx, text); err != nil {
		s.log.Warn().Err(err).Str("text", text).Msg("Speech failed")
	}
}

// Today returns the current date in model.DateLayout.
func (s *AttendanceService) Today() string {
	return s.now().Format(model.DateLayout)
}

// TakeAttendance calls every student on the roster for date (today when
// empty), collects one status per student and commits the whole day at the
// end. Nothing is written to the state or store unless the call completes.
func (s *AttendanceService) TakeAttendance(ctx context.Context, date string, pace model.Pace) (*model.SessionResult, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	if s.state.Students.Len() == 0 {
		s.Announce(ctx, response.GetMessage(response.ErrEmptyRoster))
		return nil, ErrEmptyRoster
	}

	if _, exists := s.state.AttendanceRecords[date]; exists {
		s.Announce(ctx, response.Format(response.ErrRecordExists, date))
		ok, err := s.confirm("Do you want to update it? (y/n): ")
		if err != nil {
			return nil, err
		}
		if !ok {
			s.log.Info().Str("date", date).Msg("Overwrite declined")
			return nil, ErrOverwriteDeclined
		}
	}

	result := &model.SessionResult{
		ID:      uuid.New(),
		Date:    date,
		Pace:    pace,
		Records: make(model.AttendanceDay, s.state.Students.Len()),
	}
	log := s.log.With().
		Str("session_id", result.ID.String()).
		Str("date", date).
		Str("pace", pace.String()).
		Logger()
	log.Info().Int("students", s.state.Students.Len()).Msg("Attendance call started")

	s.Announce(ctx, fmt.Sprintf("Starting attendance call for %s. Please respond with present, absent, or late after each name is called.", date))
	if err := s.pause(ctx, 2); err != nil {
		return nil, abort(log, err)
	}

	students := s.state.Students.Students()
	for i, st := range students {
		s.Announce(ctx, "Calling "+st.Name)
		if err := s.pause(ctx, 1); err != nil {
			return nil, abort(log, err)
		}

		status, err := s.collectStatus(ctx, st)
		if err != nil {
			return nil, abort(log, err)
		}

		result.Records[st.ID] = model.AttendanceRecord{
			Status:     status,
			MarkedTime: model.NewClockTime(s.now()),
		}
		s.Announce(ctx, fmt.Sprintf("%s marked as %s", st.Name, status))

		if i < len(students)-1 {
			if err := s.pause(ctx, pace.Units()); err != nil {
				return nil, abort(log, err)
			}
		}
	}

	s.state.AttendanceRecords[date] = maps.Clone(result.Records)
	if err := s.save(ctx); err != nil {
		return result, err
	}

	log.Info().
		Int("present", result.Records.Count(model.StatusPresent)).
		Int("absent", result.Records.Count(model.StatusAbsent)).
		Int("late", result.Records.Count(model.StatusLate)).
		Msg("Attendance call completed")
	s.Announce(ctx, "Attendance call completed for "+date)
	return result, nil
}

// collectStatus prompts until the operator enters a status token.
// "r"/"repeat" re-announces the name; anything else unknown is rejected.
func (s *AttendanceService) collectStatus(ctx context.Context, st model.Student) (model.Status, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintln(s.out, "Enter response: 'p' for Present, 'a' for Absent, 'l' for Late, 'r' to repeat name")
		token, err := s.prompter.Prompt(fmt.Sprintf("Response for %s: ", st.Name))
		if err != nil {
			return "", err
		}

		if isRepeat(token) {
			s.Announce(ctx, st.Name)
			continue
		}
		if status, ok := model.ParseStatus(token); ok {
			return status, nil
		}
		s.Announce(ctx, response.GetMessage(response.ErrInvalidResponse))
	}
}

// Summarize counts the records of date (today when empty) by status and
// announces the result, naming absent students still on the roster.
func (s *AttendanceService) Summarize(ctx context.Context, date string) (*model.Summary, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	day, ok := s.state.AttendanceRecords[date]
	if !ok {
		s.Announce(ctx, response.Format(response.ErrNoRecord, date))
		return nil, ErrNoRecord
	}

	sum := &model.Summary{
		Date:    date,
		Total:   len(day),
		Present: day.Count(model.StatusPresent),
		Absent:  day.Count(model.StatusAbsent),
		Late:    day.Count(model.StatusLate),
	}
	for _, st := range s.state.Students.Students() {
		if rec, ok := day[st.ID]; ok && rec.Status == model.StatusAbsent {
			sum.AbsentNames = append(sum.AbsentNames, st.Name)
		}
	}

	s.Announce(ctx, fmt.Sprintf("Attendance summary for %s. Total students: %d. Present: %d. Absent: %d. Late: %d.",
		sum.Date, sum.Total, sum.Present, sum.Absent, sum.Late))
	if len(sum.AbsentNames) > 0 {
		s.Announce(ctx, "Absent students are: "+strings.Join(sum.AbsentNames, ", "))
	}
	return sum, nil
}

// Report returns the records of date (today when empty) in roster order.
// Records of students no longer on the roster are skipped.
func (s *AttendanceService) Report(date string) (*model.Report, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	day, ok := s.state.AttendanceRecords[date]
	if !ok {
		return &model.Report{Date: date}, ErrNoRecord
	}

	report := &model.Report{Date: date}
	for _, st := range s.state.Students.Students() {
		rec, ok := day[st.ID]
		if !ok {
			continue
		}
		report.Rows = append(report.Rows, model.ReportRow{
			StudentID:  st.ID,
			Name:       st.Name,
			Status:     rec.Status,
			MarkedTime: rec.MarkedTime.String(),
		})
	}
	return report, nil
}

func (s *AttendanceService) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	if err := validator.Date(date); err != nil {
		return "", err
	}
	return date, nil
}

func (s *AttendanceService) confirm(label string) (bool, error) {
	answer, err := s.prompter.Prompt(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (s *AttendanceService) pause(ctx context.Context, units int) error {
	if units <= 0 || s.unit <= 0 {
		return ctx.Err()
	}
	return s.sleep(ctx, time.Duration(units)*s.unit)
}

func (s *AttendanceService) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.state); err != nil {
		s.log.Error().Err(err).Msg("Failed to save state")
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func abort(log zerolog.Logger, err error) error {
	log.Warn().Err(err).Msg("Attendance call aborted, nothing recorded")
	return err
}

func isRepeat(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "r", "repeat":
		return true
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
