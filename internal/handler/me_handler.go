package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/middleware"
	"github.com/flowlog/flowlog-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MeHandler handles the per-tenant profile document endpoints
type MeHandler struct {
	svc *service.ProfileService
}

// NewMeHandler creates a new MeHandler
func NewMeHandler(svc *service.ProfileService) *MeHandler {
	return &MeHandler{svc: svc}
}

// Get handles GET /me — always returns a well-formed document, creating
// the row for a brand-new tenant
func (h *MeHandler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(middleware.GetOpenID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, cfg)
}

// Update handles PUT /me (partial merge of the profile document)
func (h *MeHandler) Update(c *gin.Context) {
	var req struct {
		NickName     *string         `json:"nickName"`
		AvatarURL    *string         `json:"avatarUrl"`
		CurrentTitle *string         `json:"currentTitle"`
		CurrentTags  interface{}     `json:"currentTags"`
		Tags         interface{}     `json:"tags"`
		ReminderTime json.RawMessage `json:"reminderTime"`
		Preferences  interface{}     `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.Update(middleware.GetOpenID(c), service.UpdateProfileInput{
		NickName:     req.NickName,
		AvatarURL:    req.AvatarURL,
		CurrentTitle: req.CurrentTitle,
		CurrentTags:  req.CurrentTags,
		Tags:         req.Tags,
		ReminderTime: req.ReminderTime,
		Preferences:  req.Preferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	common.OK(c, gin.H{"updated": true})
}
