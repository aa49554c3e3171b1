package models

// ConnectionState is the link health the monitor infers from poll outcomes.
// It is not a transport property: a single failed tick flips it to
// DISCONNECTED and the next clean tick flips it back.
type ConnectionState string

const (
	StateConnected    ConnectionState = "CONNECTED"
	StateDisconnected ConnectionState = "DISCONNECTED"
)

// HistoryPoint is the two-value projection of a reading kept for trend
// charting. It is derived when the reading arrives, not stored as a copy
// of the reading itself.
type HistoryPoint struct {
	Label       string  `json:"label"` // display time, HH:MM:SS
	ECGBpm      float64 `json:"ecg_bpm"`
	SpO2Percent float64 `json:"spo2_percent"`
}

// VitalFlags marks which vitals of the latest reading crossed the local
// emphasis thresholds. Computed client-side, independent of the node's
// AnomalyReport; the two signals may disagree and both are surfaced.
type VitalFlags struct {
	HeartRate bool `json:"heart_rate"`
	SpO2      bool `json:"spo2"`
	Motion    bool `json:"motion"`
}

// DisplaySnapshot is everything a dashboard needs to render one frame of
// the monitoring session.
type DisplaySnapshot struct {
	SubjectID   string          `json:"subject_id"`
	Connection  ConnectionState `json:"connection"`
	Vitals      *VitalSigns     `json:"vitals,omitempty"`
	Report      *AnomalyReport  `json:"anomaly_report,omitempty"`
	ABPProgress float64         `json:"abp_progress"`
	Flags       VitalFlags      `json:"flags"`
	History     []HistoryPoint  `json:"history"`
}
