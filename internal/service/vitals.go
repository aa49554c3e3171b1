package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
)

// modeLabel names the deployment tier in every response envelope.
const modeLabel = "Clinical Validation Node"

const defaultProgressGoal = 1000

// VitalsService implements Vitals over the vitals repository.
type VitalsService struct {
	repo         repository.VitalsRepo
	progressGoal int
}

func NewVitalsService(repo repository.VitalsRepo, progressGoal int) *VitalsService {
	if progressGoal <= 0 {
		progressGoal = defaultProgressGoal
	}
	return &VitalsService{repo: repo, progressGoal: progressGoal}
}

// Latest assembles the response envelope for one patient: the newest
// reading sealed with its block hash, the anomaly report computed over
// the recent window, and the baseline calibration progress.
func (s *VitalsService) Latest(ctx context.Context, patientID string) (models.VitalsResponse, error) {
	latest, err := s.repo.LatestBySubject(ctx, patientID)
	if err != nil {
		return models.VitalsResponse{}, err
	}
	recent, err := s.repo.RecentBySubject(ctx, patientID, forecastWindow)
	if err != nil {
		return models.VitalsResponse{}, err
	}
	count, err := s.repo.CountBySubject(ctx, patientID)
	if err != nil {
		return models.VitalsResponse{}, err
	}

	latest.BlockHash = blockHash(latest)
	report := buildReport(latest, recent)
	return models.VitalsResponse{
		Vitals:      &latest,
		Report:      &report,
		ABPProgress: baselineProgress(count, s.progressGoal),
		Mode:        modeLabel,
	}, nil
}

// blockHash seals a reading's identity, time and heart rate. It is
// derived on every read rather than stored, so the database row can
// never disagree with its own seal.
func blockHash(v models.VitalSigns) string {
	seed := v.ID + "-" + v.Timestamp.UTC().Format(time.RFC3339Nano) + "-" +
		strconv.FormatFloat(v.ECGBpm, 'f', -1, 64)
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// baselineProgress maps the stored-reading count onto a 0..100 percent
// scale with one decimal, capped once the calibration goal is met.
func baselineProgress(count int64, goal int) float64 {
	pct := float64(count) / float64(goal) * 100
	pct = math.Round(pct*10) / 10
	if pct > 100 {
		pct = 100
	}
	return pct
}
