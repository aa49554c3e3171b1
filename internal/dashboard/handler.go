// Package dashboard exposes the monitoring session over HTTP and
// WebSocket for the ward display.
package dashboard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/models"
	"github.com/Chiggixo/EzyMedi/internal/monitor"
)

// Response/status constants shared by the session endpoints.
const (
	statusWatching = "watching"
	statusStopped  = "stopped"

	errUnknownSubject  = "unknown subject_id"
	errInvalidBodyPref = "invalid body: "
)

// SessionController is what the dashboard needs from the monitoring
// session.
type SessionController interface {
	Start(subjectID string)
	Stop()
	Display() models.DisplaySnapshot
	Export() (models.Observation, string, error)
}

// Handler wires the dashboard HTTP layer to the session and roster.
type Handler struct {
	session  SessionController
	subjects []models.Subject
	log      *logger.Logger
}

func NewHandler(session SessionController, subjects []models.Subject, log *logger.Logger) *Handler {
	return &Handler{session: session, subjects: subjects, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.GET("/subjects", h.listSubjects)
		session := api.Group("/session")
		{
			session.POST("/start", h.startSession)
			session.POST("/stop", h.stopSession)
			session.GET("/state", h.sessionState)
			session.GET("/export", h.exportSnapshot)
		}
	}

	// Live snapshot stream (HTTP upgrade) on the same port.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) listSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"subjects": h.subjects})
}

type startRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
}

func (h *Handler) startSession(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if !h.knownSubject(req.SubjectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownSubject})
		return
	}
	h.session.Start(req.SubjectID)
	c.JSON(http.StatusOK, gin.H{
		"status":     statusWatching,
		"subject_id": req.SubjectID,
	})
}

func (h *Handler) stopSession(c *gin.Context) {
	h.session.Stop()
	c.JSON(http.StatusOK, gin.H{"status": statusStopped})
}

func (h *Handler) sessionState(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Display())
}

// exportSnapshot serves the FHIR document as a download named after the
// watched subject.
func (h *Handler) exportSnapshot(c *gin.Context) {
	obs, filename, err := h.session.Export()
	if err != nil {
		if errors.Is(err, monitor.ErrNoSnapshot) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("export_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, obs)
}

func (h *Handler) knownSubject(id string) bool {
	for _, s := range h.subjects {
		if s.ID == id {
			return true
		}
	}
	return false
}
