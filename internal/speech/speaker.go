package speech

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/validator"
)

// Speaker announces text aloud and blocks until playback finishes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Voice() model.VoiceSettings
	SetVoice(v model.VoiceSettings)
}

// New builds the speaker selected by cfg. A missing or disabled TTS command
// yields a silent speaker so the console keeps working.
func New(cfg *config.Config, log zerolog.Logger) Speaker {
	voice := model.VoiceSettings{Rate: cfg.SpeechRate, Volume: cfg.SpeechVolume}
	if fields := validator.Struct(voice); fields != nil {
		log.Warn().
			Interface("fields", fields).
			Msg("Voice settings out of range, using defaults")
		voice = model.DefaultVoiceSettings()
	}

	command := strings.TrimSpace(cfg.TTSCommand)
	if command == "" || strings.EqualFold(command, "none") {
		return NewSilentSpeaker(voice)
	}

	path, err := exec.LookPath(command)
	if err != nil {
		log.Warn().Err(err).Str("command", command).Msg("TTS command not found, speech disabled")
		return NewSilentSpeaker(voice)
	}
	return NewCommandSpeaker(path, cfg.TTSVoice, voice, log)
}

// CommandSpeaker speaks by running an espeak-compatible program
// (espeak, espeak-ng) once per announcement.
type CommandSpeaker struct {
	command   string
	voiceName string
	settings  model.VoiceSettings
	log       zerolog.Logger
}

// NewCommandSpeaker creates a new CommandSpeaker.
func NewCommandSpeaker(command, voiceName string, settings model.VoiceSettings, log zerolog.Logger) *CommandSpeaker {
	return &CommandSpeaker{
		command:   command,
		voiceName: voiceName,
		settings:  settings,
		log:       log.With().Str("component", "speaker").Logger(),
	}
}

// Speak runs the TTS program and waits for it to exit.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.command, s.args(text)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %s: %w: %s", s.command, err, strings.TrimSpace(string(out)))
	}
	s.log.Debug().Str("text", text).Msg("Spoken")
	return nil
}

// args maps the settings onto espeak flags: -s words per minute,
// -a amplitude 0-200.
func (s *CommandSpeaker) args(text string) []string {
	args := []string{
		"-s", strconv.Itoa(s.settings.Rate),
		"-a", strconv.Itoa(amplitude(s.settings.Volume)),
	}
	if s.voiceName != "" {
		args = append(args, "-v", s.voiceName)
	}
	return append(args, "--", text)
}

func (s *CommandSpeaker) Voice() model.VoiceSettings { return s.settings }

func (s *CommandSpeaker) SetVoice(v model.VoiceSettings) { s.settings = v }

func amplitude(volume float64) int {
	return int(math.Round(volume * 200))
}

// SilentSpeaker keeps voice settings but produces no audio.
type SilentSpeaker struct {
	settings model.VoiceSettings
}

// NewSilentSpeaker creates a new SilentSpeaker.
func NewSilentSpeaker(settings model.VoiceSettings) *SilentSpeaker {
	return &SilentSpeaker{settings: settings}
}

func (s *SilentSpeaker) Speak(ctx context.Context, _ string) error { return ctx.Err() }

func (s *SilentSpeaker) Voice() model.VoiceSettings { return s.settings }

func (s *SilentSpeaker) SetVoice(v model.VoiceSettings) { s.settings = v }
