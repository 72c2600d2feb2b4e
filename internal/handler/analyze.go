package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"ai-trade-pro/internal/domain"
)

type analyzeRequest struct {
	Messages          []domain.ConversationMessage `json:"messages"`
	UserID            string                       `json:"user_id"`
	APIKey            string                       `json:"api_key"`
	Model             string                       `json:"model"`
	EnableNews        bool                         `json:"enable_news"`
	NewsSources       []string                     `json:"news_sources"`
	TradingMode       string                       `json:"trading_mode"`
	TechnicalAnalysis bool                         `json:"technical_analysis"`
	SystemPrompt      string                       `json:"system_prompt"`
	Image             string                       `json:"image"`
}

// Analyze godoc
// @Summary      Run a chart analysis through the model
// @Description  Assembles the prompt, proxies the completion, extracts a structured signal, and journals the result
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body  analyzeRequest  true  "Analysis request"
// @Success      200  {object}  service.AnalysisResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	mode := domain.ParseTradingMode(req.TradingMode)
	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("trading_mode", string(mode)),
		attribute.Bool("news", req.EnableNews),
	)

	result, err := h.analysisService.Analyze(ctx, domain.AnalysisRequest{
		Messages:          req.Messages,
		UserID:            req.UserID,
		APIKey:            req.APIKey,
		Model:             req.Model,
		EnableNews:        req.EnableNews,
		NewsSources:       req.NewsSources,
		TradingMode:       mode,
		TechnicalAnalysis: req.TechnicalAnalysis,
		SystemPrompt:      req.SystemPrompt,
		Image:             req.Image,
	})
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
			return
		}
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": upstream.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
