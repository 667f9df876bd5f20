// ABOUTME: Podcast handler for the Huma API
// ABOUTME: Runs the bookmark pipeline for one user and emails the digest with its audio

package handlers

import (
	"context"
	"net/http"

	"bookmarkcast-api/api/dto/requests"
	"bookmarkcast-api/api/dto/responses"
	"bookmarkcast-api/api/middleware"
	"bookmarkcast-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// PodcastHandler handles digest and podcast requests
type PodcastHandler struct {
	pipeline interfaces.PipelineRunner
	delivery interfaces.DeliveryService
	logger   interfaces.Logger
}

// NewPodcastHandler creates a new podcast handler
func NewPodcastHandler(pipeline interfaces.PipelineRunner, delivery interfaces.DeliveryService, logger interfaces.Logger) *PodcastHandler {
	return &PodcastHandler{
		pipeline: pipeline,
		delivery: delivery,
		logger:   logger,
	}
}

// RegisterRoutes registers all podcast-related routes
func (h *PodcastHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "createPodcast",
		Method:      http.MethodPost,
		Path:        "/podcast",
		Summary:     "Summarize bookmarks and email a podcast",
		Description: "Fetches every bookmark, summarizes it, turns the summaries into a two-host audio conversation and emails both to the user. The call returns once the email has been handed to the mail service.",
		Tags:        []string{"Podcast"},
	}, h.CreatePodcast)
}

// CreatePodcastInput defines the input for the CreatePodcast operation
type CreatePodcastInput struct {
	Body requests.PodcastRequest
}

// CreatePodcastOutput defines the output for the CreatePodcast operation
type CreatePodcastOutput struct {
	RequestID string `header:"X-Request-ID"`
	Body      responses.PodcastResponse
}

// CreatePodcast validates the request, runs the pipeline and delivers the result
func (h *PodcastHandler) CreatePodcast(ctx context.Context, input *CreatePodcastInput) (*CreatePodcastOutput, error) {
	if err := input.Body.Validate(); err != nil {
		return nil, toHumaError(err)
	}

	requestID := middleware.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	recipient := input.Body.Recipient()

	h.logger.Info("Podcast requested", map[string]interface{}{
		"request_id": requestID,
		"recipient":  recipient,
		"bookmarks":  len(input.Body.Bookmarks),
	})

	result, err := h.pipeline.Run(ctx, input.Body.ToDomain())
	if err != nil {
		h.logger.Error("Pipeline run failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, toHumaError(err)
	}

	if err := h.delivery.Deliver(ctx, recipient, result); err != nil {
		h.logger.Error("Delivery failed", map[string]interface{}{
			"request_id": requestID,
			"recipient":  recipient,
			"error":      err.Error(),
		})
		return nil, toHumaError(err)
	}

	return &CreatePodcastOutput{
		RequestID: requestID,
		Body:      responses.NewPodcastResponse(requestID, recipient, result),
	}, nil
}
