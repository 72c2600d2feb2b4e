package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"ai-trade-pro/internal/provider"
	"ai-trade-pro/internal/service"
)

type NewsFetcher interface {
	FetchNews(ctx context.Context, topic string, sources []string) string
}

type ModelCatalog interface {
	ListModels(ctx context.Context) ([]provider.ModelInfo, error)
}

type CredentialStore interface {
	Put(ctx context.Context, userID, apiKey string) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type Handler struct {
	tracer          trace.Tracer
	analysisService *service.AnalysisService
	news            NewsFetcher
	models          ModelCatalog
	credentials     CredentialStore
	adminToken      string
}

func New(
	tracer trace.Tracer,
	analysisService *service.AnalysisService,
	news NewsFetcher,
	models ModelCatalog,
	credentials CredentialStore,
	adminToken string,
) *Handler {
	return &Handler{
		tracer:          tracer,
		analysisService: analysisService,
		news:            news,
		models:          models,
		credentials:     credentials,
		adminToken:      adminToken,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/analyze", h.Analyze)
	r.GET("/api/journal", h.GetJournal)
	r.GET("/api/news", h.GetNews)
	r.GET("/api/models", h.GetModels)
	r.PUT("/api/settings/credential", h.PutCredential)
	r.GET("/api/settings/credential", h.GetCredential)
	r.DELETE("/api/settings/credential", h.DeleteCredential)

	admin := r.Group("/api/admin", h.RequireAdmin())
	admin.GET("/stats", h.GetStats)
}

// Health godoc
// @Summary      Service health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
