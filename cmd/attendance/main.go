package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/handler"
	"github.com/stemsi/voice-attendance/internal/logger"
	"github.com/stemsi/voice-attendance/internal/repository"
	"github.com/stemsi/voice-attendance/internal/service"
	"github.com/stemsi/voice-attendance/internal/speech"
	"github.com/stemsi/voice-attendance/internal/validator"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("store", cfg.StoreDriver).
		Str("tts", cfg.TTSCommand).
		Dur("delay_unit", cfg.DelayUnit).
		Msg("Starting Voice Attendance System")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// Ctrl-C cancels the running call; the unfinished day is discarded.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── Open Store ────────────────────────────────────────────────────
	store, closeStore, err := repository.NewStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	state, err := store.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load attendance data")
	}

	// ─── Initialize Speaker ────────────────────────────────────────────
	speaker := speech.New(cfg, log)

	// ─── Operator Console ──────────────────────────────────────────────
	// Piped input is echoed so scripted runs still read like a session.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	console := handler.NewConsole(os.Stdin, os.Stdout, !interactive)

	// ─── Initialize Service & Menu ─────────────────────────────────────
	svc := service.NewAttendanceService(store, state, speaker, console, os.Stdout, cfg.DelayUnit, log)
	menu := handler.NewMenuHandler(svc, console, os.Stdout, log)

	done := make(chan error, 1)
	go func() { done <- menu.Run(ctx) }()

	var runErr error
	select {
	case runErr = <-done:
	case <-ctx.Done():
		log.Info().Msg("Interrupt received, stopping...")
		// A pending save finishes within the grace period. A menu blocked on
		// an operator read holds nothing unsaved and is abandoned.
		select {
		case runErr = <-done:
		case <-time.After(shutdownGrace):
			log.Warn().Msg("Menu still waiting for input, exiting")
			runErr = ctx.Err()
		}
	}

	switch {
	case runErr == nil:
		log.Info().Msg("Shutdown complete")
	case errors.Is(runErr, context.Canceled):
		log.Info().Msg("Interrupted")
		closeStore()
		os.Exit(130)
	default:
		log.Error().Err(runErr).Msg("Menu stopped")
		closeStore()
		os.Exit(1)
	}
}

const shutdownGrace = 2 * time.Second

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
