package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/domain"
	"github.com/flowlog/flowlog-backend/internal/middleware"
	"github.com/flowlog/flowlog-backend/internal/repository"
	"github.com/flowlog/flowlog-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// BacklogHandler handles backlog item endpoints
type BacklogHandler struct {
	svc *service.BacklogService
}

// NewBacklogHandler creates a new BacklogHandler
func NewBacklogHandler(svc *service.BacklogService) *BacklogHandler {
	return &BacklogHandler{svc: svc}
}

// Create handles POST /backlogs
func (h *BacklogHandler) Create(c *gin.Context) {
	var req struct {
		Content           string      `json:"content"`
		Tags              interface{} `json:"tags"`
		EstimatedDuration *int        `json:"estimatedDuration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.svc.Create(middleware.GetOpenID(c), service.CreateBacklogInput{
		Content:           req.Content,
		Tags:              req.Tags,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, gin.H{"id": item.ID})
}

// List handles GET /backlogs?status=pending|done|deleted
func (h *BacklogHandler) List(c *gin.Context) {
	items, err := h.svc.List(middleware.GetOpenID(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, items)
}

// Transition handles PATCH /backlogs/:id ({status: done|deleted})
func (h *BacklogHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.svc.Transition(middleware.GetOpenID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondOutcome(c, outcome)
}

// Update handles PUT /backlogs/:id (partial update of content/tags/estimatedDuration)
func (h *BacklogHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Content           *string     `json:"content"`
		Tags              interface{} `json:"tags"`
		EstimatedDuration *int        `json:"estimatedDuration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.svc.Update(middleware.GetOpenID(c), id, service.UpdateBacklogInput{
		Content:           req.Content,
		Tags:              req.Tags,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondOutcome(c, outcome)
}

// Delete handles DELETE /backlogs/:id — backlog deletion is a status
// transition to the terminal deleted state, not a row removal
func (h *BacklogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.svc.Transition(middleware.GetOpenID(c), id, string(domain.StatusDeleted))
	if err != nil {
		respondError(c, err)
		return
	}
	switch outcome {
	case repository.OutcomeNotFound:
		common.Fail(c, http.StatusNotFound, "Backlog not found")
	case repository.OutcomeUnchanged:
		common.OK(c, gin.H{"deleted": false})
	default:
		common.OK(c, gin.H{"deleted": true})
	}
}

func (h *BacklogHandler) respondOutcome(c *gin.Context, outcome repository.UpdateOutcome) {
	switch outcome {
	case repository.OutcomeNotFound:
		common.Fail(c, http.StatusNotFound, "Backlog not found")
	case repository.OutcomeUnchanged:
		common.OK(c, gin.H{"updated": false})
	default:
		common.OK(c, gin.H{"updated": true})
	}
}
