package models

import "time"

// Anomaly report statuses emitted by the clinical node.
const (
	StatusNormal   = "normal"
	StatusAbnormal = "abnormal"
)

// VitalSigns is one point-in-time bundle of sensor readings for a patient.
// A reading is immutable once recorded; the monitor replaces its copy wholesale
// on every successful poll.
type VitalSigns struct {
	ID               string    `json:"_id"`
	PatientID        string    `json:"patient_id"`
	Timestamp        time.Time `json:"timestamp"`
	ECGBpm           float64   `json:"ecg_bpm"`            // beats/min
	SpO2Percent      float64   `json:"spo2_percent"`       // %
	BodyTemperatureC float64   `json:"body_temperature_C"` // °C
	HumidityPercent  float64   `json:"humidity_percent"`   // %
	AlcoholMgL       float64   `json:"alcohol_mg_L"`       // mg/L
	MotionMagnitude  float64   `json:"motion_magnitude"`   // g
	BPSystolicMmHg   float64   `json:"bp_systolic_mmHg"`   // mmHg
	BPDiastolicMmHg  float64   `json:"bp_diastolic_mmHg"`  // mmHg

	// BlockHash is the integrity digest stamped by the node at read time.
	// Consumers treat it as an opaque string.
	BlockHash string `json:"block_hash,omitempty"`
}

// AnomalyReport is the node's upstream-computed assessment of the latest
// reading. The monitor relays it verbatim and never recomputes it.
type AnomalyReport struct {
	Status   string   `json:"status"` // normal | abnormal
	Forecast string   `json:"forecast"`
	Alerts   []string `json:"alerts"`
}

// VitalsResponse is the envelope returned by GET /api/get_latest_vital.
// Exactly one of Error or Vitals is populated.
type VitalsResponse struct {
	Error       string         `json:"error,omitempty"`
	Vitals      *VitalSigns    `json:"vitals,omitempty"`
	Report      *AnomalyReport `json:"anomaly_report,omitempty"`
	ABPProgress float64        `json:"abp_progress"` // 0..100, upstream workflow completion
	Mode        string         `json:"mode,omitempty"`
}
