package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"ai-trade-pro/internal/domain"
)

// GetJournal godoc
// @Summary      List a user's analysis journal
// @Description  Returns the most recent journal entries for a user, newest first
// @Tags         journal
// @Produce      json
// @Param        user_id  query  string  true   "User identifier"
// @Param        limit    query  int     false  "Number of entries (default 20, max 100)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/journal [get]
func (h *Handler) GetJournal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-journal")
	defer span.End()

	userID := strings.TrimSpace(c.Query("user_id"))
	span.SetAttributes(attribute.String("user_id", userID))

	limit := 0
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	entries, err := h.analysisService.Journal(ctx, userID, limit)
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
