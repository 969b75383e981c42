package ports

import (
	"context"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendConfirmationEmail(ctx context.Context, to, name, clientID string) error
	SendDatabaseFailureAlert(ctx context.Context, cause error) error
}
