package mailer

import (
	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

// DevMailer prints mail to the log instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("[DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"body", text,
	)
	return "dev", nil
}

func (d *DevMailer) SendBookingConfirmation(b *domain.Booking) error {
	subject, text, _ := confirmationMessage(b)
	_, err := d.Send(b.Email, b.FirstName+" "+b.LastName, subject, text, "")
	return err
}

var _ Service = (*DevMailer)(nil)
