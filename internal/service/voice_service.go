package service

import (
	"context"
	"fmt"

	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/validator"
)

const testAnnouncement = "Voice system is working correctly. This is a test announcement."

// Voice returns the current speech settings.
func (s *AttendanceService) Voice() model.VoiceSettings {
	return s.speaker.Voice()
}

// SetSpeechRate changes the words-per-minute rate. Values outside 50-300
// are rejected and leave the settings untouched.
func (s *AttendanceService) SetSpeechRate(ctx context.Context, rate int) error {
	v := s.speaker.Voice()
	v.Rate = rate
	if msg, bad := validator.Struct(v)["rate"]; bad {
		return fmt.Errorf("%w: %s", ErrInvalidVoiceSetting, msg)
	}

	s.speaker.SetVoice(v)
	s.log.Info().Int("rate", rate).Msg("Speech rate changed")
	s.Announce(ctx, fmt.Sprintf("Speech rate changed to %d", rate))
	return nil
}

// SetSpeechVolume changes the volume. Values outside 0.0-1.0 are rejected
// and leave the settings untouched.
func (s *AttendanceService) SetSpeechVolume(ctx context.Context, volume float64) error {
	v := s.speaker.Voice()
	v.Volume = volume
	if msg, bad := validator.Struct(v)["volume"]; bad {
		return fmt.Errorf("%w: %s", ErrInvalidVoiceSetting, msg)
	}

	s.speaker.SetVoice(v)
	s.log.Info().Float64("volume", volume).Msg("Speech volume changed")
	s.Announce(ctx, fmt.Sprintf("Volume changed to %g", volume))
	return nil
}

// TestVoice speaks a fixed test announcement.
func (s *AttendanceService) TestVoice(ctx context.Context) {
	s.Announce(ctx, testAnnouncement)
}
