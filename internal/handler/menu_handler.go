package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/response"
	"github.com/stemsi/voice-attendance/internal/service"
	"github.com/stemsi/voice-attendance/internal/validator"
)

const (
	greeting = "Voice Attendance System initialized successfully"
	farewell = "Thank you for using the Voice Attendance System! Goodbye!"
)

// Command is one entry of the operator menu.
type Command int

const (
	CmdAddStudent Command = iota + 1
	CmdCallNormal
	CmdCallQuick
	CmdCallDetailed
	CmdCallStudent
	CmdSummary
	CmdReport
	CmdListStudents
	CmdTestVoice
	CmdVoiceSettings
	CmdExit
)

var commandLabels = map[Command]string{
	CmdAddStudent:    "Add Student",
	CmdCallNormal:    "Voice Attendance Call (Normal)",
	CmdCallQuick:     "Quick Attendance Call",
	CmdCallDetailed:  "Detailed Attendance Call",
	CmdCallStudent:   "Call Individual Student",
	CmdSummary:       "Announce Attendance Summary",
	CmdReport:        "View Attendance Report",
	CmdListStudents:  "List All Students",
	CmdTestVoice:     "Test Voice System",
	CmdVoiceSettings: "Change Voice Settings",
	CmdExit:          "Exit",
}

func (c Command) String() string {
	if label, ok := commandLabels[c]; ok {
		return label
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

// ParseCommand maps a menu choice ("1".."11") to a Command.
func ParseCommand(choice string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < int(CmdAddStudent) || n > int(CmdExit) {
		return 0, false
	}
	return Command(n), true
}

// errExit stops the menu loop after the exit command.
var errExit = errors.New("exit requested")

// MenuHandler runs the interactive operator menu on top of AttendanceService.
type MenuHandler struct {
	svc      *service.AttendanceService
	prompter service.Prompter
	out      io.Writer
	log      zerolog.Logger
	actions  map[Command]func(ctx context.Context) error
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(svc *service.AttendanceService, prompter service.Prompter, out io.Writer, log zerolog.Logger) *MenuHandler {
	h := &MenuHandler{
		svc:      svc,
		prompter: prompter,
		out:      out,
		log:      log.With().Str("component", "menu_handler").Logger(),
	}

	h.actions = map[Command]func(ctx context.Context) error{
		CmdAddStudent:    h.AddStudent,
		CmdCallNormal:    h.attendanceCall(model.PaceNormal),
		CmdCallQuick:     h.attendanceCall(model.PaceQuick),
		CmdCallDetailed:  h.attendanceCall(model.PaceDetailed),
		CmdCallStudent:   h.CallStudent,
		CmdSummary:       h.Summary,
		CmdReport:        h.Report,
		CmdListStudents:  h.ListStudents,
		CmdTestVoice:     h.TestVoice,
		CmdVoiceSettings: h.VoiceSettings,
		CmdExit:          h.Exit,
	}
	return h
}

// Run loops over the menu until the operator exits or input ends.
func (h *MenuHandler) Run(ctx context.Context) error {
	h.svc.Announce(ctx, greeting)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.printMenu()
		choice, err := h.prompter.Prompt("Enter your choice (1-11): ")
		if err != nil {
			return h.inputEnded(err)
		}

		cmd, ok := ParseCommand(choice)
		if !ok {
			fmt.Fprintln(h.out, response.GetMessage(response.ErrInvalidChoice))
			continue
		}

		h.log.Debug().Str("command", cmd.String()).Msg("Dispatch")
		err = h.actions[cmd](ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF):
			return h.inputEnded(err)
		default:
			h.report(err)
		}
	}
}

func (h *MenuHandler) printMenu() {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, line)
	fmt.Fprintln(h.out, "         VOICE ATTENDANCE CALLING SYSTEM")
	fmt.Fprintln(h.out, line)
	for c := CmdAddStudent; c <= CmdExit; c++ {
		fmt.Fprintf(h.out, "%d. %s\n", c, c)
	}
	fmt.Fprintln(h.out, strings.Repeat("-", 60))
}

func (h *MenuHandler) inputEnded(err error) error {
	if errors.Is(err, io.EOF) {
		h.log.Info().Msg("Operator input closed")
		return nil
	}
	return err
}

// report prints errors the service has not already announced.
func (h *MenuHandler) report(err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateStudent),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrEmptyRoster),
		errors.Is(err, service.ErrNoRecord),
		errors.Is(err, service.ErrOverwriteDeclined):
		// already announced
	case errors.Is(err, service.ErrInvalidStudent):
		h.log.Warn().Err(err).Msg("Registration rejected")
		fmt.Fprintln(h.out, response.GetMessage(response.ErrMissingStudent))
	case errors.Is(err, validator.ErrInvalidDate):
		fmt.Fprintln(h.out, response.GetMessage(response.ErrInvalidDate))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn().Err(err).Msg("Operation cancelled")
	default:
		h.log.Error().Err(err).Msg("Operation failed")
		fmt.Fprintln(h.out, response.Format(response.ErrSaveFailed, err))
	}
}

// promptDate asks for a date until the operator enters a valid one or
// presses Enter for today (returned as "").
func (h *MenuHandler) promptDate() (string, error) {
	for {
		date, err := h.prompter.Prompt("Enter date (YYYY-MM-DD) or press Enter for today: ")
		if err != nil {
			return "", err
		}
		if date == "" {
			return "", nil
		}
		if err := validator.Date(date); err == nil {
			return date, nil
		}
		fmt.Fprintln(h.out, response.GetMessage(response.ErrInvalidDate))
	}
}

// AddStudent registers one student.
func (h *MenuHandler) AddStudent(ctx context.Context) error {
	id, err := h.prompter.Prompt("Enter Student ID: ")
	if err != nil {
		return err
	}
	name, err := h.prompter.Prompt("Enter Student Name: ")
	if err != nil {
		return err
	}
	if id == "" || name == "" {
		fmt.Fprintln(h.out, response.GetMessage(response.ErrMissingStudent))
		return nil
	}

	_, err = h.svc.Register(ctx, model.RegisterStudentRequest{ID: id, Name: name})
	return err
}

func (h *MenuHandler) attendanceCall(pace model.Pace) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		date, err := h.promptDate()
		if err != nil {
			return err
		}
		_, err = h.svc.TakeAttendance(ctx, date, pace)
		return err
	}
}

// CallStudent announces one student by ID.
func (h *MenuHandler) CallStudent(ctx context.Context) error {
	id, err := h.prompter.Prompt("Enter Student ID to call: ")
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(h.out, response.GetMessage(response.ErrMissingStudentID))
		return nil
	}

	_, err = h.svc.CallStudent(ctx, id)
	return err
}

// Summary announces the status counts for a date.
func (h *MenuHandler) Summary(ctx context.Context) error {
	date, err := h.promptDate()
	if err != nil {
		return err
	}
	_, err = h.svc.Summarize(ctx, date)
	return err
}

// Report prints the attendance table for a date.
func (h *MenuHandler) Report(_ context.Context) error {
	date, err := h.promptDate()
	if err != nil {
		return err
	}

	report, err := h.svc.Report(date)
	if errors.Is(err, service.ErrNoRecord) {
		fmt.Fprintln(h.out, response.Format(response.ErrNoRecord, report.Date))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(h.out, "\n--- Attendance Report for %s ---\n", report.Date)
	fmt.Fprintf(h.out, "%-10s %-20s %-10s %-10s\n", "ID", "Name", "Status", "Time")
	fmt.Fprintln(h.out, strings.Repeat("-", 50))
	for _, row := range report.Rows {
		fmt.Fprintf(h.out, "%-10s %-20s %-10s %-10s\n", row.StudentID, row.Name, row.Status, row.MarkedTime)
	}
	return nil
}

// ListStudents prints the roster.
func (h *MenuHandler) ListStudents(_ context.Context) error {
	students := h.svc.Students()
	if len(students) == 0 {
		fmt.Fprintln(h.out, response.GetMessage(response.ErrNoStudents))
		return nil
	}

	fmt.Fprintln(h.out, "\n--- Registered Students ---")
	fmt.Fprintf(h.out, "%-10s %-20s %-20s\n", "ID", "Name", "Added Date")
	fmt.Fprintln(h.out, strings.Repeat("-", 50))
	for _, s := range students {
		fmt.Fprintf(h.out, "%-10s %-20s %-20s\n", s.ID, s.Name, s.AddedDate)
	}
	return nil
}

// TestVoice speaks the test announcement.
func (h *MenuHandler) TestVoice(ctx context.Context) error {
	h.svc.TestVoice(ctx)
	return nil
}

// VoiceSettings edits rate and volume. An empty entry keeps the current
// value; a non-numeric entry ends the dialog.
func (h *MenuHandler) VoiceSettings(ctx context.Context) error {
	current := h.svc.Voice()
	fmt.Fprintln(h.out, "\n--- Voice Settings ---")
	fmt.Fprintf(h.out, "Current speech rate: %d\n", current.Rate)
	fmt.Fprintf(h.out, "Current volume: %g\n", current.Volume)

	raw, err := h.prompter.Prompt(fmt.Sprintf("Enter new speech rate (50-300, current: %d): ", current.Rate))
	if err != nil {
		return err
	}
	if raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(h.out, response.GetMessage(response.ErrInvalidNumber))
			return nil
		}
		if err := h.svc.SetSpeechRate(ctx, rate); errors.Is(err, service.ErrInvalidVoiceSetting) {
			fmt.Fprintln(h.out, response.GetMessage(response.ErrRateOutOfRange))
		}
	}

	raw, err = h.prompter.Prompt(fmt.Sprintf("Enter new volume (0.0-1.0, current: %g): ", current.Volume))
	if err != nil {
		return err
	}
	if raw != "" {
		volume, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(h.out, response.GetMessage(response.ErrInvalidNumber))
			return nil
		}
		if err := h.svc.SetSpeechVolume(ctx, volume); errors.Is(err, service.ErrInvalidVoiceSetting) {
			fmt.Fprintln(h.out, response.GetMessage(response.ErrVolumeOutOfRange))
		}
	}
	return nil
}

// Exit speaks the farewell and stops the loop.
func (h *MenuHandler) Exit(ctx context.Context) error {
	h.svc.Announce(ctx, farewell)
	return errExit
}
