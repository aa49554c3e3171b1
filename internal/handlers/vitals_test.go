package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
	"github.com/Chiggixo/EzyMedi/internal/service"
)

// ---- Service mocks ----

type mockIngest struct {
	retID    string
	err      error
	calls    int
	lastSeen models.VitalSigns
}

func (m *mockIngest) Record(ctx context.Context, v models.VitalSigns) (models.VitalSigns, error) {
	m.calls++
	m.lastSeen = v
	if m.err != nil {
		return models.VitalSigns{}, m.err
	}
	v.ID = m.retID
	v.Timestamp = time.Now().UTC()
	return v, nil
}

type mockVitals struct {
	resp        models.VitalsResponse
	err         error
	lastPatient string
}

func (m *mockVitals) Latest(ctx context.Context, patientID string) (models.VitalsResponse, error) {
	m.lastPatient = patientID
	return m.resp, m.err
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(ctx context.Context) error { return m.err }

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// ---- Tests ----

func TestRoot(t *testing.T) {
	t.Run("reports a healthy store", func(t *testing.T) {
		r := newTestRouter(&service.Service{Health: &mockHealth{}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["status"] != statusOnline || resp["service"] == "" {
			t.Fatalf("unexpected identity payload: %v", resp)
		}
		if resp["database"] != dbConnected {
			t.Fatalf("database=%q, want %q", resp["database"], dbConnected)
		}
		if _, err := time.Parse(time.RFC3339, resp["timestamp"]); err != nil {
			t.Fatalf("timestamp not RFC3339: %q", resp["timestamp"])
		}
	})

	t.Run("reports an unreachable store", func(t *testing.T) {
		r := newTestRouter(&service.Service{Health: &mockHealth{err: errors.New("database is closed")}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["database"] != dbOffline {
			t.Fatalf("database=%q, want %q", resp["database"], dbOffline)
		}
	})
}

func TestAddVitals(t *testing.T) {
	t.Run("stores a packet and applies channel defaults", func(t *testing.T) {
		ing := &mockIngest{retID: "r-42"}
		r := newTestRouter(&service.Service{Ingest: ing})

		body := bytes.NewBufferString(`{"patient_id":"patient_002","ecg_bpm":81,"spo2_percent":97.5,"body_temperature_C":36.8,"bp_systolic_mmHg":118,"bp_diastolic_mmHg":79}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/vitals", body)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if ing.calls != 1 {
			t.Fatalf("expected one Record call, got %d", ing.calls)
		}
		got := ing.lastSeen
		if got.PatientID != "patient_002" || got.ECGBpm != 81 {
			t.Fatalf("packet not passed through: %+v", got)
		}
		if got.HumidityPercent != defaultHumidityPercent {
			t.Errorf("humidity default: want %v, got %v", defaultHumidityPercent, got.HumidityPercent)
		}
		if got.AlcoholMgL != defaultAlcoholMgL {
			t.Errorf("alcohol default: want %v, got %v", defaultAlcoholMgL, got.AlcoholMgL)
		}
		if got.MotionMagnitude != defaultMotionMagnitude {
			t.Errorf("motion default: want %v, got %v", defaultMotionMagnitude, got.MotionMagnitude)
		}

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["status"] != statusSuccess || resp["id"] != "r-42" {
			t.Fatalf("unexpected response: %v", resp)
		}
	})

	t.Run("an explicit zero channel is not overwritten", func(t *testing.T) {
		ing := &mockIngest{retID: "r-43"}
		r := newTestRouter(&service.Service{Ingest: ing})

		body := bytes.NewBufferString(`{"patient_id":"patient_002","ecg_bpm":81,"motion_magnitude":0}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/vitals", body)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if ing.lastSeen.MotionMagnitude != 0 {
			t.Fatalf("explicit zero motion replaced with %v", ing.lastSeen.MotionMagnitude)
		}
	})

	t.Run("rejects a body without patient_id", func(t *testing.T) {
		ing := &mockIngest{}
		r := newTestRouter(&service.Service{Ingest: ing})

		body := bytes.NewBufferString(`{"ecg_bpm":81}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/vitals", body)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if ing.calls != 0 {
			t.Fatalf("Record must not be called on a bad body")
		}
	})

	t.Run("maps a service failure to 500", func(t *testing.T) {
		ing := &mockIngest{err: errors.New("db down")}
		r := newTestRouter(&service.Service{Ingest: ing})

		body := bytes.NewBufferString(`{"patient_id":"patient_002"}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/vitals", body)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != errStoreVitals {
			t.Fatalf("unexpected error body: %v", resp)
		}
	})
}

func TestGetLatestVital(t *testing.T) {
	envelope := models.VitalsResponse{
		Vitals: &models.VitalSigns{
			ID:          "r-7",
			PatientID:   "patient_003",
			Timestamp:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			ECGBpm:      84,
			SpO2Percent: 96,
			BlockHash:   "ABCDEF",
		},
		Report: &models.AnomalyReport{
			Status:   models.StatusNormal,
			Forecast: "STABLE: NORMAL PHYSIOLOGICAL TRENDS",
			Alerts:   []string{},
		},
		ABPProgress: 42.5,
		Mode:        "Clinical Validation Node",
	}

	t.Run("returns the envelope for an explicit patient", func(t *testing.T) {
		vit := &mockVitals{resp: envelope}
		r := newTestRouter(&service.Service{Vitals: vit})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/get_latest_vital?patient_id=patient_003", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if vit.lastPatient != "patient_003" {
			t.Fatalf("patient id not passed: %q", vit.lastPatient)
		}
		var got models.VitalsResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Vitals == nil || got.Vitals.ID != "r-7" || got.Vitals.BlockHash != "ABCDEF" {
			t.Fatalf("vitals not relayed: %+v", got.Vitals)
		}
		if got.Report == nil || got.Report.Status != models.StatusNormal {
			t.Fatalf("report not relayed: %+v", got.Report)
		}
		if got.ABPProgress != 42.5 || got.Mode != "Clinical Validation Node" {
			t.Fatalf("envelope metadata lost: %+v", got)
		}
	})

	t.Run("falls back to the default patient", func(t *testing.T) {
		vit := &mockVitals{resp: envelope}
		r := newTestRouter(&service.Service{Vitals: vit})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/get_latest_vital", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if vit.lastPatient != defaultPatientID {
			t.Fatalf("default patient: want %q, got %q", defaultPatientID, vit.lastPatient)
		}
	})

	t.Run("maps an empty stream to 404 with the standard message", func(t *testing.T) {
		vit := &mockVitals{err: repository.ErrNotFound}
		r := newTestRouter(&service.Service{Vitals: vit})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/get_latest_vital?patient_id=patient_009", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != errNoData {
			t.Fatalf("unexpected error body: %v", resp)
		}
	})

	t.Run("maps other failures to 500", func(t *testing.T) {
		vit := &mockVitals{err: errors.New("db locked")}
		r := newTestRouter(&service.Service{Vitals: vit})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/get_latest_vital", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})
}
