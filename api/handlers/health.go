// ABOUTME: Health check handler
// ABOUTME: Lets load balancers and uptime probes confirm the process is serving

package handlers

import (
	"context"
	"net/http"

	"bookmarkcast-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2"
)

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealthRoutes registers GET /health
func RegisterHealthRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, input *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
	})
}
