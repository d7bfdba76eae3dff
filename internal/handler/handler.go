package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// parseID parses the numeric :id route param
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.Fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// respondError maps service/repository errors onto the envelope.
// Validation failures surface their message; storage failures stay generic.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrInvalidTransition) {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	logger.GetLogger().Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	common.Fail(c, http.StatusInternalServerError, "Internal Server Error")
}
