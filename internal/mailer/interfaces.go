package mailer

import (
	"fmt"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
)

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendBookingConfirmation(b *domain.Booking) error
}

func confirmationMessage(b *domain.Booking) (subject, text, html string) {
	guest := b.FirstName + " " + b.LastName
	subject = "Your booking request has been received"
	text = fmt.Sprintf(
		"Hello %s,\n\nWe received your booking request for %s to %s (%d nights, %d guests).\nTotal: %s EUR (including %s EUR cleaning fee and %s EUR security deposit).\n\nYour booking reference is %s. The reservation is held while we await payment.",
		guest, b.CheckIn, b.CheckOut, b.Nights, b.Guests,
		b.TotalPrice, b.CleaningFee, b.SecurityDeposit, b.ID,
	)
	html = fmt.Sprintf(
		`<p>Hello %s,</p><p>We received your booking request for <b>%s</b> to <b>%s</b> (%d nights, %d guests).</p><p>Total: <b>%s&nbsp;EUR</b> (including %s&nbsp;EUR cleaning fee and %s&nbsp;EUR security deposit).</p><p>Your booking reference is <code>%s</code>. The reservation is held while we await payment.</p>`,
		guest, b.CheckIn, b.CheckOut, b.Nights, b.Guests,
		b.TotalPrice, b.CleaningFee, b.SecurityDeposit, b.ID,
	)
	return subject, text, html
}
