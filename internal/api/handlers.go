// internal/api/handlers.go
package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fitstack/exertrack/internal/errors"
	"github.com/fitstack/exertrack/internal/services"
	"github.com/fitstack/exertrack/internal/utils"
)

// Handler handles API requests
type Handler struct {
	ExerciseService *services.ExerciseService // exercise document store
	StatsService    *services.StatsService    // document counters
	UpdateHub       *UpdateHub                // websocket update push
	Response        *ResponseHelper           // response writer
}

// NewHandler creates the API handler
func NewHandler(exercises *services.ExerciseService, stats *services.StatsService, hub *UpdateHub) *Handler {
	return &Handler{
		ExerciseService: exercises,
		StatsService:    stats,
		UpdateHub:       hub,
		Response:        NewResponseHelper(),
	}
}

// AddExerciseRequest is the body of POST /api/exercises
type AddExerciseRequest struct {
	Name    string `json:"name"`
	Section string `json:"section"`
}

// AddSectionRequest is the body of POST /api/sections
type AddSectionRequest struct {
	Name string `json:"name"`
}

// GetExercises returns the full document
func (h *Handler) GetExercises(c *gin.Context) {
	doc, err := h.ExerciseService.Document()
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, doc)
}

// AddExercise adds an exercise to a section and returns the updated document
func (h *Handler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, ErrorBadRequest, "invalid request body")
		return
	}

	doc, err := h.ExerciseService.AddExercise(req.Name, req.Section)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, doc)
}

// DeleteExercise removes an exercise and returns the updated document.
// Path segments arrive percent-decoded.
func (h *Handler) DeleteExercise(c *gin.Context) {
	section := c.Param("section")
	name := c.Param("name")

	doc, err := h.ExerciseService.DeleteExercise(section, name)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, doc)
}

// GetSections returns the ordered list of section names
func (h *Handler) GetSections(c *gin.Context) {
	names, err := h.ExerciseService.SectionNames()
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, names)
}

// AddSection creates a new empty section and returns the updated document
func (h *Handler) AddSection(c *gin.Context) {
	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, ErrorBadRequest, "invalid request body")
		return
	}

	doc, err := h.ExerciseService.AddSection(req.Name)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, doc)
}

// DeleteSection removes a section and returns the updated document
func (h *Handler) DeleteSection(c *gin.Context) {
	doc, err := h.ExerciseService.DeleteSection(c.Param("name"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, doc)
}

// GetStats returns section and exercise counts
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.StatsService.Snapshot()
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Response.Success(c, stats)
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"status":            "ok",
		"websocket_clients": h.UpdateHub.ClientCount(),
	})
}

// respondStoreError maps store errors onto response statuses: invalid input,
// duplicates and last-section deletion are 400, missing resources are 404,
// everything else is an opaque 500
func (h *Handler) respondStoreError(c *gin.Context, err error) {
	var appError *apperrors.AppError
	code := ErrorInternalError
	if errors.As(err, &appError) {
		code = appError.Code
	}

	switch {
	case apperrors.IsValidationError(err), apperrors.IsConflictError(err):
		h.Response.BadRequest(c, code, appError.Message)
	case apperrors.IsNotFoundError(err):
		h.Response.NotFound(c, appError.Message)
	default:
		utils.GetLogger().Errorf("store operation failed: %v", err)
		h.Response.InternalError(c, code)
	}
}
