// ABOUTME: Transactional email client speaking a JSON-over-HTTP send API
// ABOUTME: Encodes attachments as base64 and authenticates with a bearer key

package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/pkg/config"
)

// sendRequest is the JSON body of a send call
type sendRequest struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Text        string           `json:"text,omitempty"`
	Attachments []sendAttachment `json:"attachments,omitempty"`
}

type sendAttachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// Mailer implements interfaces.Mailer
type Mailer struct {
	client interfaces.HTTPClient
	cfg    config.MailConfig
	logger interfaces.Logger
}

// NewMailer creates a mailer posting through client
func NewMailer(client interfaces.HTTPClient, cfg config.MailConfig, logger interfaces.Logger) *Mailer {
	return &Mailer{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers msg. Transport failures and non-2xx answers are *errors.DeliveryError.
func (m *Mailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	body := sendRequest{
		From:    m.cfg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	if msg.Attachment != nil {
		body.Attachments = []sendAttachment{{
			Filename:    msg.Attachment.Filename,
			Content:     base64.StdEncoding.EncodeToString(msg.Attachment.Data),
			ContentType: msg.Attachment.ContentType,
		}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &errors.DeliveryError{Recipient: msg.To, Err: err}
	}

	resp, err := m.client.Post(ctx, m.cfg.APIURL, bytes.NewReader(payload), map[string]string{
		"Authorization": "Bearer " + m.cfg.APIKey,
	})
	if err != nil {
		return &errors.DeliveryError{Recipient: msg.To, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body(), 4096))
		return &errors.DeliveryError{
			Recipient:  msg.To,
			StatusCode: resp.StatusCode(),
			Err: &errors.ExternalAPIError{
				StatusCode: resp.StatusCode(),
				Message:    strings.TrimSpace(string(detail)),
				API:        "mail",
			},
		}
	}

	m.logger.Info("Email accepted by mail API", map[string]interface{}{
		"recipient":  msg.To,
		"attachment": msg.Attachment != nil,
		"bytes":      len(payload),
	})
	return nil
}
