package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/repository"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOnline  = "online"
	statusSuccess = "success"

	dbConnected = "connected"
	dbOffline   = "offline"

	errNoData          = "No data found for this patient"
	errStoreVitals     = "failed to store vitals"
	errGetVitals       = "failed to load vitals"
	errInvalidBodyPref = "invalid body: "

	// defaultPatientID keeps the read endpoint usable without query
	// parameters, matching what bench clients send during bring-up.
	defaultPatientID = "patient_001"
)

// Sensor packets may omit the environmental channels; the node fills in
// ward-nominal values so downstream consumers always see a full record.
const (
	defaultHumidityPercent = 50.0
	defaultAlcoholMgL      = 0.0
	defaultMotionMagnitude = 0.5
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for device packets. Pointer fields distinguish an absent
// channel from a genuine zero reading.
type ingestRequest struct {
	PatientID        string   `json:"patient_id" binding:"required"`
	ECGBpm           float64  `json:"ecg_bpm"`
	SpO2Percent      float64  `json:"spo2_percent"`
	BodyTemperatureC float64  `json:"body_temperature_C"`
	HumidityPercent  *float64 `json:"humidity_percent"`
	AlcoholMgL       *float64 `json:"alcohol_mg_L"`
	MotionMagnitude  *float64 `json:"motion_magnitude"`
	BPSystolicMmHg   float64  `json:"bp_systolic_mmHg"`
	BPDiastolicMmHg  float64  `json:"bp_diastolic_mmHg"`
}

// IngestRequest is an exported model for Swagger docs of the ingest payload.
type IngestRequest struct {
	PatientID        string  `json:"patient_id" example:"patient_001"`
	ECGBpm           float64 `json:"ecg_bpm" example:"78"`
	SpO2Percent      float64 `json:"spo2_percent" example:"98"`
	BodyTemperatureC float64 `json:"body_temperature_C" example:"36.7"`
	HumidityPercent  float64 `json:"humidity_percent,omitempty" example:"50"`
	AlcoholMgL       float64 `json:"alcohol_mg_L,omitempty" example:"0"`
	MotionMagnitude  float64 `json:"motion_magnitude,omitempty" example:"0.5"`
	BPSystolicMmHg   float64 `json:"bp_systolic_mmHg" example:"120"`
	BPDiastolicMmHg  float64 `json:"bp_diastolic_mmHg" example:"80"`
}

func (r ingestRequest) toVitals() models.VitalSigns {
	v := models.VitalSigns{
		PatientID:        r.PatientID,
		ECGBpm:           r.ECGBpm,
		SpO2Percent:      r.SpO2Percent,
		BodyTemperatureC: r.BodyTemperatureC,
		HumidityPercent:  defaultHumidityPercent,
		AlcoholMgL:       defaultAlcoholMgL,
		MotionMagnitude:  defaultMotionMagnitude,
		BPSystolicMmHg:   r.BPSystolicMmHg,
		BPDiastolicMmHg:  r.BPDiastolicMmHg,
	}
	if r.HumidityPercent != nil {
		v.HumidityPercent = *r.HumidityPercent
	}
	if r.AlcoholMgL != nil {
		v.AlcoholMgL = *r.AlcoholMgL
	}
	if r.MotionMagnitude != nil {
		v.MotionMagnitude = *r.MotionMagnitude
	}
	return v
}

// @Summary      Node identity and health
// @Description  Liveness document with storage reachability and server time.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	database := dbConnected
	if err := h.services.Health.Ping(c.Request.Context()); err != nil {
		database = dbOffline
	}
	c.JSON(http.StatusOK, gin.H{
		"service":   "EzyMedi Clinical Validation Node",
		"status":    statusOnline,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary      Ingest a vital-signs packet
// @Description  Stores one sensor packet. The node stamps id and timestamp; omitted environmental channels get ward-nominal defaults.
// @Tags         vitals
// @Accept       json
// @Produce      json
// @Param        body  body      IngestRequest  true  "Sensor packet"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/vitals [post]
func (h *Handler) addVitals(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	stored, err := h.services.Ingest.Record(c.Request.Context(), req.toVitals())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStoreVitals, "vitals_ingest_failed", err, "patient_id", req.PatientID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status": statusSuccess,
		"id":     stored.ID,
	})
}

// @Summary      Latest vitals with anomaly report
// @Description  Returns the newest reading for a patient, its block hash, the anomaly report over the recent window, and baseline calibration progress.
// @Tags         vitals
// @Produce      json
// @Param        patient_id  query     string  false  "Patient id"  default(patient_001)
// @Success      200         {object}  models.VitalsResponse
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/get_latest_vital [get]
func (h *Handler) getLatestVital(c *gin.Context) {
	patientID := c.DefaultQuery("patient_id", defaultPatientID)

	resp, err := h.services.Vitals.Latest(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoData})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetVitals, "vitals_read_failed", err, "patient_id", patientID)
		return
	}
	c.JSON(http.StatusOK, resp)
}
