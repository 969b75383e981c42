package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailConfig holds email service configuration
type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	BaseURL        string
	// AlertEmail receives database failure alerts; alerts are skipped when empty.
	AlertEmail string
}

// Sender delivers a prepared message. *sendgrid.Client satisfies it.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService implements ports.EmailService with SendGrid
type EmailService struct {
	config    *EmailConfig
	logger    *logrus.Logger
	sender    Sender
	templates *template.Template
}

var _ ports.EmailService = (*EmailService)(nil)

// NewEmailService creates a SendGrid backed email service
func NewEmailService(config *EmailConfig, logger *logrus.Logger) (*EmailService, error) {
	return NewEmailServiceWithSender(config, sendgrid.NewSendClient(config.SendGridAPIKey), logger)
}

func NewEmailServiceWithSender(config *EmailConfig, sender Sender, logger *logrus.Logger) (*EmailService, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &EmailService{
		config:    config,
		logger:    logger,
		sender:    sender,
		templates: templates,
	}, nil
}

// ConfirmationEmailData holds data for the confirmation template
type ConfirmationEmailData struct {
	Name            string
	ConfirmationURL string
}

// DatabaseFailureData holds data for the database alert template
type DatabaseFailureData struct {
	Cause      string
	OccurredAt string
}

// ConfirmationURL builds the public link that confirms clientID's email.
func (e *EmailService) ConfirmationURL(clientID string) string {
	return fmt.Sprintf("%s/clients/%s/email/confirmation", strings.TrimRight(e.config.BaseURL, "/"), clientID)
}

func (e *EmailService) SendConfirmationEmail(ctx context.Context, to, name, clientID string) error {
	html, err := e.render("confirmation.html", ConfirmationEmailData{
		Name:            name,
		ConfirmationURL: e.ConfirmationURL(clientID),
	})
	if err != nil {
		return err
	}
	return e.send(ctx, to, name, "Confirme seu e-mail", html)
}

func (e *EmailService) SendDatabaseFailureAlert(ctx context.Context, cause error) error {
	if e.config.AlertEmail == "" {
		e.logger.Warn("database failure alert skipped: no alert address configured")
		return nil
	}
	msg := "unknown"
	if cause != nil {
		msg = cause.Error()
	}
	html, err := e.render("database_failure.html", DatabaseFailureData{
		Cause:      msg,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return e.send(ctx, e.config.AlertEmail, "", "Falha na conexão com o banco de dados", html)
}

func (e *EmailService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *EmailService) send(ctx context.Context, to, toName, subject, html string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail(toName, to), "", html)

	response, err := e.sender.SendWithContext(ctx, message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).WithError(err).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		e.logger.WithFields(logrus.Fields{
			"to":          to,
			"subject":     subject,
			"status_code": response.StatusCode,
		}).Error("Email provider rejected message")
		return fmt.Errorf("email provider returned status %d", response.StatusCode)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")
	return nil
}
