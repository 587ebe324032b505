package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "DATA_FILE", "SPEECH_RATE", "SPEECH_VOLUME", "DELAY_UNIT_MS", "AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.StoreDriver != StoreDriverFile {
		t.Errorf("expected store driver %q, got %q", StoreDriverFile, cfg.StoreDriver)
	}
	if cfg.DataFile != "attendance_data.json" {
		t.Errorf("unexpected data file %q", cfg.DataFile)
	}
	if cfg.SpeechRate != 150 || cfg.SpeechVolume != 0.9 {
		t.Errorf("unexpected voice defaults rate=%d volume=%v", cfg.SpeechRate, cfg.SpeechVolume)
	}
	if cfg.DelayUnit != time.Second {
		t.Errorf("expected 1s delay unit, got %s", cfg.DelayUnit)
	}
	if !cfg.AutoMigrate {
		t.Error("auto migrate should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("SPEECH_RATE", "200")
	t.Setenv("SPEECH_VOLUME", "0.5")
	t.Setenv("DELAY_UNIT_MS", "10")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg := Load()
	if cfg.StoreDriver != StoreDriverRedis {
		t.Errorf("expected redis driver, got %q", cfg.StoreDriver)
	}
	if cfg.SpeechRate != 200 || cfg.SpeechVolume != 0.5 {
		t.Errorf("unexpected voice settings rate=%d volume=%v", cfg.SpeechRate, cfg.SpeechVolume)
	}
	if cfg.DelayUnit != 10*time.Millisecond {
		t.Errorf("expected 10ms delay unit, got %s", cfg.DelayUnit)
	}
	if cfg.AutoMigrate {
		t.Error("auto migrate should be disabled")
	}
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SPEECH_RATE", "fast")
	if got := getEnvInt("SPEECH_RATE", 150); got != 150 {
		t.Errorf("expected fallback 150, got %d", got)
	}
}

func TestStateKey(t *testing.T) {
	if got := StoreKey.StateKey("voice_attendance"); got != "voice_attendance:state" {
		t.Errorf("unexpected key %q", got)
	}
}
