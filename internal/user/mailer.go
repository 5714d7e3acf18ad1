package user

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=mailer.go -destination=mock_user/mock_mailer.go -package=mock_user

// Mailer delivers transactional mail for the password reset flow.
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, email, otp string) error
	SendPasswordResetConfirmation(ctx context.Context, email string) error
}

// logMailer writes outgoing mail to the application log instead of an SMTP
// relay. Deployments without a mail provider keep the reset flow usable.
type logMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.L()
	}
	return &logMailer{logger: logger.Named("user.mailer")}
}

func (m *logMailer) SendPasswordResetEmail(ctx context.Context, email, otp string) error {
	m.logger.Info("password reset email dispatched",
		zap.String("to", email),
		zap.String("otp", otp),
	)
	return nil
}

func (m *logMailer) SendPasswordResetConfirmation(ctx context.Context, email string) error {
	m.logger.Info("password reset confirmation dispatched",
		zap.String("to", email),
	)
	return nil
}
