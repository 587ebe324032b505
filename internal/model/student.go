package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Student represents a registered student. The ID is the roster key and is
// not repeated inside the persisted profile.
type Student struct {
	ID        string   `json:"-"`
	Name      string   `json:"name"`
	AddedDate DateTime `json:"added_date"`
}

// RegisterStudentRequest is the operator payload for registering a student.
type RegisterStudentRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Roster is the ordered set of registered students. Iteration follows
// registration order, which is also the order used when calling names.
// The zero value is an empty roster ready to use.
type Roster struct {
	order []string
	byID  map[string]Student
}

// Len returns the number of registered students.
func (r *Roster) Len() int { return len(r.order) }

// Get looks up a student by ID.
func (r *Roster) Get(id string) (Student, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Add appends a student. It returns false and leaves the roster unchanged
// when the ID is already registered.
func (r *Roster) Add(s Student) bool {
	if _, exists := r.byID[s.ID]; exists {
		return false
	}
	if r.byID == nil {
		r.byID = make(map[string]Student)
	}
	r.order = append(r.order, s.ID)
	r.byID[s.ID] = s
	return true
}

// Students returns a copy of the roster in registration order.
func (r *Roster) Students() []Student {
	out := make([]Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// MarshalJSON writes the roster as an object keyed by student ID, keeping
// registration order.
func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.byID[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by student ID in document order.
func (r *Roster) UnmarshalJSON(data []byte) error {
	*r = Roster{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("roster: expected string key, got %v", tok)
		}
		var s Student
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("roster: student %q: %w", id, err)
		}
		s.ID = id
		if !r.Add(s) {
			// Duplicate keys: last value wins, first position is kept.
			r.byID[id] = s
		}
	}

	_, err = dec.Token()
	return err
}
