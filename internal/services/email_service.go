package services

import (
	"context"
	"time"

	"github.com/skillyug/skillyug-api/config"
	"github.com/skillyug/skillyug-api/internal/email"
	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/pkg/logger"
	"github.com/skillyug/skillyug-api/pkg/mailer"
	"github.com/skillyug/skillyug-api/pkg/metrics"
	"go.uber.org/zap"
)

// EmailService validates transactional email requests, renders their
// content and delivers them over SMTP. Each dispatch verifies the relay
// first so an unreachable relay is reported as a distinct failure class
// from a rejected message.
type EmailService struct {
	mailer mailer.Mailer
	config *config.Config
}

// NewEmailService creates a new email dispatch service.
func NewEmailService(cfg *config.Config, m mailer.Mailer) *EmailService {
	return &EmailService{
		mailer: m,
		config: cfg,
	}
}

// Dispatch processes one email request and returns the delivery message
// id. Failures are typed: *BadRequestError for local validation,
// *UnavailableError when the relay can't be reached, *SendError when the
// relay rejects the message.
func (s *EmailService) Dispatch(ctx context.Context, req *models.EmailRequest) (string, error) {
	if req.Email == "" || req.Type == "" {
		metrics.EmailDispatches.WithLabelValues(string(req.Type), "validation_failed").Inc()
		return "", &BadRequestError{Message: "Email and type are required"}
	}

	if !validEmail(req.Email) {
		metrics.EmailDispatches.WithLabelValues(string(req.Type), "validation_failed").Inc()
		return "", &BadRequestError{Message: "Invalid email format"}
	}

	content, err := email.Content(req, s.config.Frontend.BaseURL)
	if err != nil {
		metrics.EmailDispatches.WithLabelValues(string(req.Type), "validation_failed").Inc()
		return "", &BadRequestError{Message: err.Error()}
	}

	start := time.Now()
	defer func() {
		metrics.EmailDispatchDuration.WithLabelValues(string(req.Type)).Observe(metrics.MeasureDuration(start))
	}()

	if err := s.mailer.Verify(); err != nil {
		logger.LogError(err, "SMTP verification failed")
		metrics.EmailDispatches.WithLabelValues(string(req.Type), "unavailable").Inc()
		return "", &UnavailableError{Details: err.Error()}
	}

	messageID, err := s.mailer.Send(&mailer.Message{
		To:      req.Email,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	})
	if err != nil {
		logger.LogError(err, "Email send failed", zap.String("type", string(req.Type)))
		metrics.EmailDispatches.WithLabelValues(string(req.Type), "send_failed").Inc()
		return "", &SendError{Details: err.Error()}
	}

	metrics.EmailDispatches.WithLabelValues(string(req.Type), "sent").Inc()
	logger.Info("Email sent",
		zap.String("type", string(req.Type)),
		zap.String("message_id", messageID))

	return messageID, nil
}
