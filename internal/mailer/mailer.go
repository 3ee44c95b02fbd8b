package mailer

import (
	"go.uber.org/zap"

	"reviewhub/pkg/logger"
)

// Mailer delivers a confirmation code to a user out-of-band. Real delivery
// belongs to an external service; the API only depends on this interface.
type Mailer interface {
	SendConfirmationCode(email, username, code string) error
}

// LogMailer writes the code to the application log instead of sending mail.
// Stands in for the delivery collaborator in development and tests.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendConfirmationCode(email, username, code string) error {
	logger.Log.Info("confirmation code issued",
		zap.String("email", email),
		zap.String("username", username),
		zap.String("code", code),
	)
	return nil
}
