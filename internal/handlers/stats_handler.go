package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"park-stats-api/internal/middleware"
	"park-stats-api/internal/models"
	"park-stats-api/internal/services"
	"park-stats-api/pkg/lambda"
)

// StatsHandler serves the aggregated Park API statistics
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats handles requests to the stats endpoint.
// Request method, query and body are ignored and the status is always 200.
func (h *StatsHandler) GetStats(c *gin.Context) {
	for key, value := range middleware.CORSHeaders() {
		c.Header(key, value)
	}

	c.JSON(http.StatusOK, h.statsService.GetStats(c.Request.Context()))
}

// HandleGet is the Lambda counterpart of GetStats
func (h *StatsHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return StatsResponse(h.statsService.GetStats(ctx))
}

// StatsResponse encodes stats as a 200 Lambda response with CORS headers
func StatsResponse(stats *models.StatsResponse) (*lambda.Response, error) {
	body, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}

	headers := middleware.CORSHeaders()
	headers["Content-Type"] = "application/json"

	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       body,
	}, nil
}

// FallbackResponse answers with the fallback stats when no service is available
func FallbackResponse(cause error) (*lambda.Response, error) {
	logrus.WithError(cause).Error("Stats service unavailable, serving fallback stats")
	return StatsResponse(models.NewFallbackStats(time.Now()))
}
