package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Chiggixo/EzyMedi/internal/models"
)

// ErrNotFound is returned when a subject has no recorded readings yet.
var ErrNotFound = errors.New("no readings found for subject")

// VitalsRepo is the persistence contract of the clinical data stream.
type VitalsRepo interface {
	Insert(ctx context.Context, v models.VitalSigns) error
	// LatestBySubject returns the newest reading, or ErrNotFound.
	LatestBySubject(ctx context.Context, patientID string) (models.VitalSigns, error)
	// RecentBySubject returns up to limit readings, newest first.
	RecentBySubject(ctx context.Context, patientID string, limit int) ([]models.VitalSigns, error)
	CountBySubject(ctx context.Context, patientID string) (int64, error)
}

type Repository struct {
	Vitals VitalsRepo

	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Vitals: NewVitalsSQLite(db),
		db:     db,
	}
}

// Ping verifies the underlying store still answers.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
