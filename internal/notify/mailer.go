package notify

import (
	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// Mailer is the outbound email collaborator. Template rendering and
// delivery live outside this service; implementations never return an
// error, only whether the send was accepted.
type Mailer interface {
	Send(
		recipients []string,
		subject string,
		templateName string,
		context map[string]any,
		booking *models.SalesBooking,
		profile *models.SalesProfile,
	) bool
}

// LogMailer records the send and reports success. It stands in until a
// real delivery backend is wired up.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) Send(
	recipients []string,
	subject string,
	templateName string,
	context map[string]any,
	booking *models.SalesBooking,
	profile *models.SalesProfile,
) bool {
	ref := ""
	if booking != nil {
		ref = booking.Reference
	}
	m.Logger.Info("email queued",
		zap.Strings("recipients", recipients),
		zap.String("subject", subject),
		zap.String("template", templateName),
		zap.String("booking", ref),
	)
	return true
}
