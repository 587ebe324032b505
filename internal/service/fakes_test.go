package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
)

// ── Fake Store ──

type memStore struct {
	saves   int
	last    []byte
	failErr error
}

func (m *memStore) Load(_ context.Context) (*model.State, error) {
	if m.last == nil {
		return model.NewState(), nil
	}
	state := model.NewState()
	if err := json.Unmarshal(m.last, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (m *memStore) Save(_ context.Context, state *model.State) error {
	if m.failErr != nil {
		return m.failErr
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.saves++
	m.last = data
	return nil
}

// ── Fake Speaker ──

type recordingSpeaker struct {
	spoken []string
	voice  model.VoiceSettings
}

func newRecordingSpeaker() *recordingSpeaker {
	return &recordingSpeaker{voice: model.DefaultVoiceSettings()}
}

func (r *recordingSpeaker) Speak(_ context.Context, text string) error {
	r.spoken = append(r.spoken, text)
	return nil
}

func (r *recordingSpeaker) Voice() model.VoiceSettings { return r.voice }

func (r *recordingSpeaker) SetVoice(v model.VoiceSettings) { r.voice = v }

func (r *recordingSpeaker) count(text string) int {
	n := 0
	for _, s := range r.spoken {
		if s == text {
			n++
		}
	}
	return n
}

// ── Fake Prompter ──

type scriptedPrompter struct {
	answers []string
	labels  []string
}

func (p *scriptedPrompter) Prompt(label string) (string, error) {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	return next, nil
}

// ── Helpers ──

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

type testEnv struct {
	svc      *AttendanceService
	store    *memStore
	speaker  *recordingSpeaker
	prompter *scriptedPrompter
	out      *bytes.Buffer
	pauses   []time.Duration
}

func setupTestService(t *testing.T, answers ...string) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    &memStore{},
		speaker:  newRecordingSpeaker(),
		prompter: &scriptedPrompter{answers: answers},
		out:      &bytes.Buffer{},
	}
	env.svc = NewAttendanceService(env.store, model.NewState(), env.speaker, env.prompter, env.out, time.Second, zerolog.Nop())
	env.svc.now = func() time.Time { return fixedNow }
	env.svc.sleep = func(_ context.Context, d time.Duration) error {
		env.pauses = append(env.pauses, d)
		return nil
	}
	return env
}

func (e *testEnv) register(t *testing.T, students ...[2]string) {
	t.Helper()
	for _, s := range students {
		if _, err := e.svc.Register(context.Background(), model.RegisterStudentRequest{ID: s[0], Name: s[1]}); err != nil {
			t.Fatalf("register %s: %v", s[0], err)
		}
	}
}

func (e *testEnv) snapshot(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(e.svc.state)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

var errDiskFull = errors.New("disk full")
