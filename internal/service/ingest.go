package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
)

// ErrMissingPatient is returned when a packet arrives without a patient id.
var ErrMissingPatient = errors.New("patient_id is required")

// IngestService implements Ingest over the vitals repository.
type IngestService struct {
	repo repository.VitalsRepo
}

func NewIngestService(repo repository.VitalsRepo) *IngestService {
	return &IngestService{repo: repo}
}

// Record validates the packet, overwrites its id and timestamp with
// server-side values and persists it. Device clocks are not trusted, so
// the arrival time always wins.
func (s *IngestService) Record(ctx context.Context, v models.VitalSigns) (models.VitalSigns, error) {
	if v.PatientID == "" {
		return models.VitalSigns{}, ErrMissingPatient
	}
	v.ID = uuid.NewString()
	v.Timestamp = time.Now().UTC()
	v.BlockHash = ""
	if err := s.repo.Insert(ctx, v); err != nil {
		return models.VitalSigns{}, err
	}
	return v, nil
}
