package service

import (
	"strings"

	"github.com/Chiggixo/EzyMedi/internal/models"
)

// Forecast messages, ordered from most to least severe. Priority is
// enforced in forecastTrajectory, not by string comparison.
const (
	forecastLearning = "Learning Baseline Signature..."
	forecastCritical = "CRITICAL: DEATH SPIRAL PATTERN DETECTED"
	forecastDecay    = "WARNING: PERSISTENT PHYSIOLOGICAL DECAY"
	forecastVelocity = "ALERT: HIGH HEART RATE VELOCITY"
	forecastStable   = "STABLE: NORMAL PHYSIOLOGICAL TRENDS"
)

const (
	alertHypoxia     = "CRITICAL: HYPOXIA DETECTED"
	alertDeathSpiral = "AI: DEATH SPIRAL PREDICTION"
	alertTachycardia = "ALERT: SEVERE TACHYCARDIA"
	alertGeneric     = "AI: ANOMALY DETECTED"
)

// forecastWindow is how many of the newest readings the trajectory scan
// looks at, and forecastMinSamples how many it needs before it stops
// reporting a learning phase.
const (
	forecastWindow     = 10
	forecastMinSamples = 5
)

// forecastTrajectory scans a patient's recent readings, newest first,
// for the trend patterns that precede decompensation.
func forecastTrajectory(history []models.VitalSigns) string {
	if len(history) < forecastMinSamples {
		return forecastLearning
	}
	if len(history) > forecastWindow {
		history = history[:forecastWindow]
	}

	newest, oldest := history[0], history[forecastMinSamples-1]
	spo2Drop := oldest.SpO2Percent - newest.SpO2Percent
	bpmRise := newest.ECGBpm - oldest.ECGBpm

	// Coupled desaturation and tachycardia is the classic shock spiral.
	if spo2Drop >= 3 && bpmRise >= 10 {
		return forecastCritical
	}

	// A slow slide counts as decay only if every step is downhill
	// (within 1% of probe noise) and the patient has already left the
	// normal band.
	decaying := true
	for i := 0; i < len(history)-1; i++ {
		if history[i].SpO2Percent > history[i+1].SpO2Percent+1 {
			decaying = false
			break
		}
	}
	if decaying && newest.SpO2Percent < 94 {
		return forecastDecay
	}

	if bpmRise >= 20 {
		return forecastVelocity
	}
	return forecastStable
}

// classifyReading is the instantaneous anomaly model. It encodes the two
// clusters the ward data separates cleanly: a hypoxic crisis presents as
// low SpO2 with a racing heart and a still patient, while a flailing
// sensor shows high motion with preserved oxygenation.
func classifyReading(v models.VitalSigns) bool {
	if v.MotionMagnitude >= 4.0 && v.SpO2Percent >= 96 {
		// Motion artifact, not a crisis.
		return false
	}
	return v.SpO2Percent <= 92 && v.ECGBpm >= 130 && v.MotionMagnitude <= 1.0
}

// buildReport combines the trend forecast, the instantaneous classifier
// and two clinical guardrails into the anomaly report shipped with every
// response envelope.
func buildReport(latest models.VitalSigns, history []models.VitalSigns) models.AnomalyReport {
	forecast := forecastTrajectory(history)
	abnormal := classifyReading(latest)

	hr, spo2 := latest.ECGBpm, latest.SpO2Percent

	// Guardrail 1: textbook-normal vitals are never flagged, whatever
	// the classifier thinks.
	if hr >= 60 && hr <= 95 && spo2 >= 96 {
		abnormal = false
	}
	// Guardrail 2: hard hypoxia or a non-stable forecast always flags,
	// so the status line can never contradict the forecast.
	if spo2 < 93 ||
		strings.Contains(forecast, "WARNING") ||
		strings.Contains(forecast, "CRITICAL") ||
		strings.Contains(forecast, "ALERT") {
		abnormal = true
	}

	report := models.AnomalyReport{
		Status:   models.StatusNormal,
		Forecast: forecast,
		Alerts:   []string{},
	}
	if !abnormal {
		return report
	}

	report.Status = models.StatusAbnormal
	switch {
	case spo2 < 93:
		report.Alerts = append(report.Alerts, alertHypoxia)
	case strings.Contains(forecast, "CRITICAL"):
		report.Alerts = append(report.Alerts, alertDeathSpiral)
	case hr > 140:
		report.Alerts = append(report.Alerts, alertTachycardia)
	default:
		report.Alerts = append(report.Alerts, alertGeneric)
	}
	return report
}
