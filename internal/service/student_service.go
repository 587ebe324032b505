package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/response"
	"github.com/stemsi/voice-attendance/internal/validator"
)

// Register adds a student to the roster and saves immediately.
// A duplicate ID is announced and leaves the roster unchanged.
func (s *AttendanceService) Register(ctx context.Context, req model.RegisterStudentRequest) (*model.Student, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)

	if fields := validator.Struct(req); fields != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStudent, joinFields(fields))
	}

	if _, exists := s.state.Students.Get(req.ID); exists {
		s.Announce(ctx, response.Format(response.ErrDuplicateStudent, req.ID))
		return nil, ErrDuplicateStudent
	}

	student := model.Student{
		ID:        req.ID,
		Name:      req.Name,
		AddedDate: model.NewDateTime(s.now()),
	}
	s.state.Students.Add(student)

	if err := s.save(ctx); err != nil {
		return nil, err
	}

	s.log.Info().Str("student_id", student.ID).Msg("Student registered")
	s.Announce(ctx, fmt.Sprintf("Student %s with ID %s added successfully!", student.Name, student.ID))
	return &student, nil
}

// joinFields renders translated field errors in a stable order.
func joinFields(fields map[string]string) string {
	msgs := make([]string, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		msgs = append(msgs, fields[key])
	}
	return strings.Join(msgs, "; ")
}

// CallStudent announces a single student's name.
func (s *AttendanceService) CallStudent(ctx context.Context, id string) (*model.Student, error) {
	id = strings.TrimSpace(id)
	st, ok := s.state.Students.Get(id)
	if !ok {
		s.Announce(ctx, response.Format(response.ErrStudentNotFound, id))
		return nil, ErrStudentNotFound
	}

	s.Announce(ctx, "Calling "+st.Name)
	return &st, nil
}

// Students returns the roster in registration order.
func (s *AttendanceService) Students() []model.Student {
	return s.state.Students.Students()
}
