package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/middleware"
	"github.com/flowlog/flowlog-backend/internal/repository"
	"github.com/flowlog/flowlog-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CardHandler handles journal card endpoints
type CardHandler struct {
	svc *service.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

// Create handles POST /cards
func (h *CardHandler) Create(c *gin.Context) {
	var req struct {
		Content   string      `json:"content"`
		Insight   string      `json:"insight"`
		NextPlan  string      `json:"nextPlan"`
		Mood      *int        `json:"mood"`
		StartTime int64       `json:"startTime"`
		EndTime   int64       `json:"endTime"`
		Tags      interface{} `json:"tags"`
		DateStr   string      `json:"dateStr"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.svc.Create(middleware.GetOpenID(c), service.CreateCardInput{
		Content:   req.Content,
		Insight:   req.Insight,
		NextPlan:  req.NextPlan,
		Mood:      req.Mood,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Tags:      req.Tags,
		DateStr:   req.DateStr,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, gin.H{"id": card.ID, "duration": card.Duration})
}

// List handles GET /cards?date=YYYY-MM-DD
func (h *CardHandler) List(c *gin.Context) {
	cards, err := h.svc.ListByDate(middleware.GetOpenID(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, cards)
}

// Update handles PUT /cards/:id (partial update of insight/mood/tags)
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Insight *string     `json:"insight"`
		Mood    *int        `json:"mood"`
		Tags    interface{} `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.svc.Update(middleware.GetOpenID(c), id, service.UpdateCardInput{
		Insight: req.Insight,
		Mood:    req.Mood,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	switch outcome {
	case repository.OutcomeNotFound:
		common.Fail(c, http.StatusNotFound, "Card not found")
	case repository.OutcomeUnchanged:
		common.OK(c, gin.H{"updated": false})
	default:
		common.OK(c, gin.H{"updated": true})
	}
}

// Delete handles DELETE /cards/:id (hard delete)
func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(middleware.GetOpenID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		common.Fail(c, http.StatusNotFound, "Card not found")
		return
	}
	common.OK(c, gin.H{"deleted": true})
}
