package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetModels godoc
// @Summary      List available models
// @Description  Returns the provider's public model catalog
// @Tags         models
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/models [get]
func (h *Handler) GetModels(c *gin.Context) {
	if h.models == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model catalog unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-models")
	defer span.End()

	models, err := h.models.ListModels(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}
