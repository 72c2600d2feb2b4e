package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const defaultNewsTopic = "Global Market Sentiment"

// GetNews godoc
// @Summary      Fetch market news headlines
// @Description  Scrapes recent headlines for a topic, optionally restricted to source domains
// @Tags         news
// @Produce      json
// @Param        topic    query  string  false  "Instrument or topic (default: Global Market Sentiment)"
// @Param        sources  query  string  false  "Comma-separated source domains (e.g. investing.com,forexfactory.com)"
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/news [get]
func (h *Handler) GetNews(c *gin.Context) {
	if h.news == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "news fetcher unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-news")
	defer span.End()

	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		topic = defaultNewsTopic
	}
	span.SetAttributes(attribute.String("topic", topic))

	var sources []string
	for _, s := range strings.Split(c.Query("sources"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"topic": topic,
		"news":  h.news.FetchNews(ctx, topic, sources),
	})
}
