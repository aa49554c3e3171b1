package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/models"
)

// SimulatorService drives synthetic bedside traffic through the ingest
// path so the node has live data without physical sensors attached.
type SimulatorService struct {
	ingest Ingest
	log    *logger.Logger
	wards  []*wardState
	next   int
}

func NewSimulatorService(ingest Ingest, subjects []models.Subject, log *logger.Logger) *SimulatorService {
	s := &SimulatorService{ingest: ingest, log: log}
	for _, sub := range subjects {
		s.wards = append(s.wards, &wardState{subject: sub, spo2: 98.0})
	}
	return s
}

// Run emits one packet per tick, visiting the ward round-robin, until ctx
// is cancelled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	if len(s.wards) == 0 {
		s.log.Warnf("simulator: no subjects configured, nothing to do")
		return
	}
	s.log.Infof("simulator: feeding %d subjects every %s", len(s.wards), tick)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Infof("simulator: stopped")
			return
		case <-ticker.C:
			ward := s.wards[s.next]
			s.next = (s.next + 1) % len(s.wards)
			if _, err := s.ingest.Record(ctx, ward.nextPacket()); err != nil {
				s.log.Errorf("simulator: record for %s: %v", ward.subject.ID, err)
			}
		}
	}
}

// wardState carries one simulated patient's drift between packets.
type wardState struct {
	subject models.Subject
	spo2    float64
	idx     int
	episode int // packets left in the current acute episode
}

func (w *wardState) nextPacket() models.VitalSigns {
	w.idx++
	hr := float64(75 + rand.Intn(11) - 5)

	switch w.subject.Condition {
	case models.ConditionAcute:
		// Periodic tachycardia episodes with a coupled SpO2 collapse.
		if w.episode == 0 && w.idx%40 == 0 {
			w.episode = 10
		}
		if w.episode > 0 {
			w.episode--
			hr = float64(130 + rand.Intn(31))
			w.spo2 -= 0.5
		} else if w.spo2 < 98 {
			w.spo2 += 0.3
		}
	case models.ConditionChronic:
		// Slow, near-linear desaturation.
		hr = float64(82 + rand.Intn(9) - 4)
		w.spo2 = 98.0 - float64(w.idx)*0.05
	case models.ConditionNoisy:
		hr += float64(rand.Intn(11) - 5)
		w.spo2 += randStep(0.2)
		if rand.Float64() < 0.2 {
			// Probe bounce.
			w.spo2 -= 1 + rand.Float64()*3
		}
	default: // stable
		w.spo2 += randStep(0.2)
		if w.spo2 > 99.4 {
			w.spo2 = 99.4
		}
		if w.spo2 < 97.0 {
			w.spo2 = 97.0
		}
	}
	if w.spo2 < 70 {
		w.spo2 = 70
	}
	if w.spo2 > 100 {
		w.spo2 = 100
	}

	motion := 0.5 + rand.Float64()*0.5
	if w.subject.Condition == models.ConditionNoisy {
		motion = 5.8 + rand.Float64()*2.0
	}
	temp := 36.6 + randStep(0.3)
	if w.episode > 0 {
		temp += 0.8
	}
	systolic := 120 + rand.Intn(11) - 5
	if hr >= 130 {
		systolic += 25
	}

	return models.VitalSigns{
		PatientID:        w.subject.ID,
		ECGBpm:           math.Trunc(hr),
		SpO2Percent:      math.Trunc(w.spo2),
		BodyTemperatureC: math.Round(temp*10) / 10,
		HumidityPercent:  float64(50 + rand.Intn(11) - 5),
		AlcoholMgL:       0,
		MotionMagnitude:  math.Round(motion*100) / 100,
		BPSystolicMmHg:   float64(systolic),
		BPDiastolicMmHg:  float64(80 + rand.Intn(7) - 3),
	}
}

// randStep returns a uniform value in [-max, max].
func randStep(max float64) float64 {
	return (rand.Float64()*2 - 1) * max
}
