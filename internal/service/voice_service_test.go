package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/voice-attendance/internal/model"
)

func TestSetSpeechRate(t *testing.T) {
	tests := []struct {
		rate    int
		wantErr bool
	}{
		{50, false},
		{300, false},
		{49, true},
		{301, true},
	}

	for _, tt := range tests {
		env := setupTestService(t)
		err := env.svc.SetSpeechRate(context.Background(), tt.rate)

		if tt.wantErr {
			if !errors.Is(err, ErrInvalidVoiceSetting) {
				t.Errorf("rate %d: expected ErrInvalidVoiceSetting, got %v", tt.rate, err)
			}
			if env.svc.Voice() != model.DefaultVoiceSettings() {
				t.Errorf("rate %d: settings changed to %+v", tt.rate, env.svc.Voice())
			}
			if len(env.speaker.spoken) != 0 {
				t.Errorf("rate %d: nothing should be announced", tt.rate)
			}
			continue
		}

		if err != nil {
			t.Errorf("rate %d: unexpected error %v", tt.rate, err)
		}
		if env.svc.Voice().Rate != tt.rate {
			t.Errorf("rate %d: not applied, got %+v", tt.rate, env.svc.Voice())
		}
	}
}

func TestSetSpeechVolume(t *testing.T) {
	env := setupTestService(t)

	if err := env.svc.SetSpeechVolume(context.Background(), 1.5); !errors.Is(err, ErrInvalidVoiceSetting) {
		t.Fatalf("expected ErrInvalidVoiceSetting, got %v", err)
	}
	if env.svc.Voice().Volume != model.DefaultSpeechVolume {
		t.Errorf("volume changed to %v", env.svc.Voice().Volume)
	}

	if err := env.svc.SetSpeechVolume(context.Background(), 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.svc.Voice().Volume != 0.5 {
		t.Errorf("volume not applied, got %v", env.svc.Voice().Volume)
	}
	if env.speaker.count("Volume changed to 0.5") != 1 {
		t.Errorf("expected announcement, got %v", env.speaker.spoken)
	}
}

func TestTestVoice(t *testing.T) {
	env := setupTestService(t)
	env.svc.TestVoice(context.Background())

	if env.speaker.count(testAnnouncement) != 1 {
		t.Errorf("expected test announcement, got %v", env.speaker.spoken)
	}
}
