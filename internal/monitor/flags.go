package monitor

import "github.com/Chiggixo/EzyMedi/internal/models"

// Ward emphasis limits. A vital is flagged only when it is strictly past
// its limit.
const (
	DefaultMaxHeartRate = 110.0
	DefaultMinSpO2      = 94.0
	DefaultMaxMotion    = 4.5
)

// Thresholds decide the per-vital emphasis flags. They are local to the
// monitor and independent of the node's anomaly report; the two signals
// are shown side by side and never reconciled.
type Thresholds struct {
	MaxHeartRate float64
	MinSpO2      float64
	MaxMotion    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxHeartRate: DefaultMaxHeartRate,
		MinSpO2:      DefaultMinSpO2,
		MaxMotion:    DefaultMaxMotion,
	}
}

// Flags evaluates one reading against the limits.
func (t Thresholds) Flags(v models.VitalSigns) models.VitalFlags {
	return models.VitalFlags{
		HeartRate: v.ECGBpm > t.MaxHeartRate,
		SpO2:      v.SpO2Percent < t.MinSpO2,
		Motion:    v.MotionMagnitude > t.MaxMotion,
	}
}
