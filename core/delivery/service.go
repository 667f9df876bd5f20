// ABOUTME: Delivery service that renders a pipeline result and emails it to the requester
// ABOUTME: Attaches the podcast MP3 only when audio was produced

package delivery

import (
	"context"
	stderrors "errors"

	"bookmarkcast-api/core/document"
	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
)

const (
	// AttachmentName is the filename of the podcast attachment
	AttachmentName = "bookmark-podcast.mp3"

	// AttachmentType is the MIME type of the podcast attachment
	AttachmentType = "audio/mpeg"
)

// ErrRender marks a summary document that could not be rendered
var ErrRender = stderrors.New("summary document could not be rendered")

// Service implements interfaces.DeliveryService
type Service struct {
	mailer   interfaces.Mailer
	renderer *document.Renderer
	subject  string
	logger   interfaces.Logger
}

// NewService creates a delivery service
func NewService(mailer interfaces.Mailer, renderer *document.Renderer, subject string, logger interfaces.Logger) *Service {
	if subject == "" {
		subject = domain.DefaultSummaryHeader
	}
	return &Service{
		mailer:   mailer,
		renderer: renderer,
		subject:  subject,
		logger:   logger,
	}
}

// Compose builds the email for result without sending it
func (s *Service) Compose(recipient string, result *domain.PipelineResult) (domain.EmailMessage, error) {
	if result == nil {
		return domain.EmailMessage{}, ErrRender
	}

	htmlBody, err := s.renderer.RenderHTML(result.Summary)
	if err != nil {
		return domain.EmailMessage{}, errors.WrapError(stderrors.Join(ErrRender, err), "compose email")
	}

	textBody, err := s.renderer.RenderText(htmlBody)
	if err != nil {
		// The HTML part is enough for delivery
		s.logger.Warn("Plain-text body unavailable", map[string]interface{}{
			"recipient": recipient,
			"error":     err.Error(),
		})
		textBody = ""
	}

	msg := domain.EmailMessage{
		To:      recipient,
		Subject: s.subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
	if result.HasAudio() {
		msg.Attachment = &domain.Attachment{
			Filename:    AttachmentName,
			ContentType: AttachmentType,
			Data:        result.Audio,
		}
	}
	return msg, nil
}

// Deliver renders and sends result. Render failures wrap ErrRender; mailer
// failures are reported as *errors.DeliveryError.
func (s *Service) Deliver(ctx context.Context, recipient string, result *domain.PipelineResult) error {
	msg, err := s.Compose(recipient, result)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.IsDelivery(err) {
			return err
		}
		return &errors.DeliveryError{Recipient: recipient, Err: err}
	}

	s.logger.Info("Digest delivered", map[string]interface{}{
		"recipient":  recipient,
		"fragments":  result.Summary.Len(),
		"attachment": msg.Attachment != nil,
	})
	return nil
}
