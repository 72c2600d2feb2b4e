package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type credentialRequest struct {
	UserID string `json:"user_id"`
	APIKey string `json:"api_key"`
}

// PutCredential godoc
// @Summary      Store a provider API key for a user
// @Description  Keys are stored server side with a 30 day TTL so clients do not resend them per request
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body  credentialRequest  true  "Credential"
// @Success      204  "stored"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/settings/credential [put]
func (h *Handler) PutCredential(c *gin.Context) {
	if h.credentials == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "credential store unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.put-credential")
	defer span.End()

	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.APIKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and api_key are required"})
		return
	}

	if err := h.credentials.Put(ctx, req.UserID, req.APIKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCredential godoc
// @Summary      Check whether a user has a stored API key
// @Description  Reports presence only; the key itself is never returned
// @Tags         settings
// @Produce      json
// @Param        user_id  query  string  true  "User identifier"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/settings/credential [get]
func (h *Handler) GetCredential(c *gin.Context) {
	if h.credentials == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "credential store unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-credential")
	defer span.End()

	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	key, err := h.credentials.Get(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": key != ""})
}

// DeleteCredential godoc
// @Summary      Remove a user's stored API key
// @Tags         settings
// @Produce      json
// @Param        user_id  query  string  true  "User identifier"
// @Success      204  "deleted"
// @Failure      400  {object}  map[string]string
// @Router       /api/settings/credential [delete]
func (h *Handler) DeleteCredential(c *gin.Context) {
	if h.credentials == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "credential store unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.delete-credential")
	defer span.End()

	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.credentials.Delete(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
