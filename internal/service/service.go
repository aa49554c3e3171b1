package service

import (
	"context"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
)

// Ingest accepts vital-sign packets from bedside devices (or the ward
// simulator) and persists them.
type Ingest interface {
	// Record stamps the packet with a server-side id and timestamp and
	// stores it. The stored copy is returned.
	Record(ctx context.Context, v models.VitalSigns) (models.VitalSigns, error)
}

// Vitals serves the read side of the node: the latest reading for a
// patient together with the anomaly report computed over their recent
// history.
type Vitals interface {
	// Latest returns the full response envelope for one patient.
	// repository.ErrNotFound is returned when the patient has no
	// readings yet.
	Latest(ctx context.Context, patientID string) (models.VitalsResponse, error)
}

// Simulator feeds synthetic ward traffic through the ingest path.
type Simulator interface {
	// Run blocks until ctx is cancelled, emitting one packet per tick,
	// cycling through the configured subjects round-robin.
	Run(ctx context.Context, tick time.Duration)
}

// Health reports storage liveness for the node status endpoint.
type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates every node-side service behind one value.
type Service struct {
	Ingest
	Vitals
	Simulator
	Health
}

// Options carries the tunables the individual services need.
type Options struct {
	// ProgressGoal is the number of stored readings that counts as a
	// fully calibrated baseline (abp_progress reaches 100).
	ProgressGoal int
	// Subjects is the ward roster the simulator cycles through.
	Subjects []models.Subject
	Log      *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	ingest := NewIngestService(repos.Vitals)
	return &Service{
		Ingest:    ingest,
		Vitals:    NewVitalsService(repos.Vitals, opts.ProgressGoal),
		Simulator: NewSimulatorService(ingest, opts.Subjects, opts.Log),
		Health:    NewHealthService(repos),
	}
}
