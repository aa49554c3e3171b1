package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
)

func TestVitalsService_Latest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	latest := models.VitalSigns{
		ID:          "r-100",
		PatientID:   "patient_001",
		Timestamp:   time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		ECGBpm:      76,
		SpO2Percent: 98,
	}

	t.Run("assembles the full envelope", func(t *testing.T) {
		t.Parallel()
		repo := &fakeVitalsRepo{
			latest: latest,
			recent: []models.VitalSigns{latest},
			count:  250,
		}
		svc := NewVitalsService(repo, 1000)

		got, err := svc.Latest(ctx, "patient_001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Vitals == nil {
			t.Fatalf("vitals missing from envelope")
		}
		if got.Vitals.ID != "r-100" {
			t.Errorf("vitals id: want r-100, got %q", got.Vitals.ID)
		}
		if got.Vitals.BlockHash == "" {
			t.Errorf("block hash must be stamped on read")
		}
		if got.Report == nil {
			t.Fatalf("anomaly report missing from envelope")
		}
		if got.Report.Forecast != forecastLearning {
			t.Errorf("forecast: want %q, got %q", forecastLearning, got.Report.Forecast)
		}
		if got.ABPProgress != 25 {
			t.Errorf("progress: want 25, got %v", got.ABPProgress)
		}
		if got.Mode != modeLabel {
			t.Errorf("mode: want %q, got %q", modeLabel, got.Mode)
		}
		if got.Error != "" {
			t.Errorf("error field must be empty on success, got %q", got.Error)
		}
	})

	t.Run("maps an empty stream to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		repo := &fakeVitalsRepo{latestErr: repository.ErrNotFound}
		svc := NewVitalsService(repo, 1000)

		_, err := svc.Latest(ctx, "patient_009")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("propagates window read failure", func(t *testing.T) {
		t.Parallel()
		repo := &fakeVitalsRepo{latest: latest, recentErr: errors.New("db locked")}
		svc := NewVitalsService(repo, 1000)

		_, err := svc.Latest(ctx, "patient_001")
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestBlockHash(t *testing.T) {
	t.Parallel()

	v := models.VitalSigns{
		ID:        "r-1",
		Timestamp: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		ECGBpm:    76,
	}

	first := blockHash(v)
	if len(first) != 64 {
		t.Fatalf("sha-256 hex must be 64 chars, got %d", len(first))
	}
	if first != strings.ToUpper(first) {
		t.Errorf("hash must be uppercase, got %q", first)
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("hash is not valid hex: %v", err)
	}
	if second := blockHash(v); second != first {
		t.Errorf("hash must be deterministic: %q vs %q", first, second)
	}

	other := v
	other.ID = "r-2"
	if blockHash(other) == first {
		t.Errorf("distinct readings must not share a hash")
	}
	faster := v
	faster.ECGBpm = 77
	if blockHash(faster) == first {
		t.Errorf("hash must cover the heart rate")
	}
}

func TestBaselineProgress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		count int64
		goal  int
		want  float64
	}{
		{"empty stream", 0, 1000, 0},
		{"one decimal of precision", 333, 1000, 33.3},
		{"exactly at the goal", 1000, 1000, 100},
		{"capped past the goal", 2500, 1000, 100},
		{"custom goal", 100, 300, 33.3},
		{"non-positive goal falls back to the default", 500, 0, 50},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			goal := tc.goal
			if goal <= 0 {
				goal = NewVitalsService(&fakeVitalsRepo{}, tc.goal).progressGoal
			}
			if got := baselineProgress(tc.count, goal); got != tc.want {
				t.Fatalf("progress(%d, %d): want %v, got %v", tc.count, goal, tc.want, got)
			}
		})
	}
}
