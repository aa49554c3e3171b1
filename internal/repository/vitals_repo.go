package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"
)

type VitalsSQLite struct {
	db *sql.DB
}

func NewVitalsSQLite(db *sql.DB) *VitalsSQLite {
	return &VitalsSQLite{db: db}
}

const (
	insertVitalSQL = `
		INSERT INTO vitals (id, patient_id, recorded_at, ecg_bpm, spo2_percent,
			body_temp_c, humidity_percent, alcohol_mg_l, motion_magnitude, bp_systolic, bp_diastolic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectVitalColumns = `id, patient_id, recorded_at, ecg_bpm, spo2_percent,
		body_temp_c, humidity_percent, alcohol_mg_l, motion_magnitude, bp_systolic, bp_diastolic`
)

// Insert persists one reading. The timestamp is always stored as UTC; a zero
// timestamp is stamped with the current time.
func (r *VitalsSQLite) Insert(ctx context.Context, v models.VitalSigns) error {
	ts := v.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertVitalSQL,
		v.ID,
		v.PatientID,
		ts,
		v.ECGBpm,
		v.SpO2Percent,
		v.BodyTemperatureC,
		v.HumidityPercent,
		v.AlcoholMgL,
		v.MotionMagnitude,
		v.BPSystolicMmHg,
		v.BPDiastolicMmHg,
	)
	return err
}

// LatestBySubject fetches the newest reading for a patient.
func (r *VitalsSQLite) LatestBySubject(ctx context.Context, patientID string) (models.VitalSigns, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+selectVitalColumns+`
		FROM vitals WHERE patient_id = ?
		ORDER BY recorded_at DESC LIMIT 1
	`, patientID)

	v, err := scanVital(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VitalSigns{}, ErrNotFound
		}
		return models.VitalSigns{}, err
	}
	return v, nil
}

// RecentBySubject returns up to limit readings, newest first, for trend
// analysis over the clinical history.
func (r *VitalsSQLite) RecentBySubject(ctx context.Context, patientID string, limit int) ([]models.VitalSigns, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectVitalColumns+`
		FROM vitals WHERE patient_id = ?
		ORDER BY recorded_at DESC LIMIT ?
	`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.VitalSigns, 0, limit)
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CountBySubject reports how many readings exist for a patient.
func (r *VitalsSQLite) CountBySubject(ctx context.Context, patientID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vitals WHERE patient_id = ?`, patientID,
	).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVital(s scanner) (models.VitalSigns, error) {
	var v models.VitalSigns
	if err := s.Scan(
		&v.ID,
		&v.PatientID,
		&v.Timestamp,
		&v.ECGBpm,
		&v.SpO2Percent,
		&v.BodyTemperatureC,
		&v.HumidityPercent,
		&v.AlcoholMgL,
		&v.MotionMagnitude,
		&v.BPSystolicMmHg,
		&v.BPDiastolicMmHg,
	); err != nil {
		return models.VitalSigns{}, err
	}
	v.Timestamp = v.Timestamp.UTC()
	return v, nil
}
