package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/logger"
	"github.com/stemsi/voice-attendance/internal/model"
	"github.com/stemsi/voice-attendance/internal/repository"
	"github.com/stemsi/voice-attendance/internal/service"
	"github.com/stemsi/voice-attendance/internal/speech"
)

// noPrompt refuses input; registration never prompts.
type noPrompt struct{}

func (noPrompt) Prompt(string) (string, error) { return "", io.EOF }

func main() {
	var count int
	var prefix string
	flag.IntVar(&count, "count", 20, "Number of students to seed (max 50)")
	flag.StringVar(&prefix, "prefix", "STU", "Student ID prefix")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := repository.NewStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	state, err := store.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load attendance data")
	}

	svc := service.NewAttendanceService(store, state, speech.NewSilentSpeaker(model.DefaultVoiceSettings()), noPrompt{}, io.Discard, 0, log)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
		"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
		"Bagas Saputra", "Citra Kirana", "Dimas Anggara", "Elisa Novita", "Fikri Maulana",
		"Gali Rakasiwi", "Hani Hanifah", "Iqbal Ramadhan", "Jasmine Azzahra", "Kevin Sanjaya",
		"Larasati Dewi", "Miko Pambudi", "Nia Ramadhani", "Oscar Lawalata", "Puput Melati",
		"Reza Rahadian", "Sari Nila", "Tigor Siahaan", "Utari Maharani", "Vicky Prasetyo",
	}
	if count > len(names) {
		count = len(names)
	}

	fmt.Printf("=== Seeding %d Students ===\n", count)

	successCount := 0
	for i := 0; i < count; i++ {
		req := model.RegisterStudentRequest{
			ID:   fmt.Sprintf("%s%03d", prefix, i+1),
			Name: names[i],
		}

		_, err := svc.Register(ctx, req)
		switch {
		case err == nil:
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		case errors.Is(err, service.ErrDuplicateStudent):
			fmt.Printf("Skipping %s (ID: %s): already registered\n", req.Name, req.ID)
		default:
			fmt.Printf("Error creating student %s (ID: %s): %v\n", req.Name, req.ID, err)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, count)
}
