package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"stayflow/internal/pkg/config"
	"stayflow/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

// Templates are compiled at startup; an unknown template name is a programming
// error surfaced at send time, never a panic.
var templates = map[string]*template.Template{
	"booking_confirmed": template.Must(template.New("booking_confirmed").Parse(
		`<h2>Your booking is confirmed</h2>
<p>Hi {{.GuestName}},</p>
<p>Your payment for booking <strong>{{.BookingID}}</strong> at {{.ApartmentName}} was received.</p>
<p>Check-in: {{.StartDate}}<br>Check-out: {{.EndDate}}<br>Total: {{.Total}}</p>`)),
	"booking_received": template.Must(template.New("booking_received").Parse(
		`<h2>Booking request received</h2>
<p>Hi {{.GuestName}},</p>
<p>We received your booking <strong>{{.BookingID}}</strong> for {{.ApartmentName}}
from {{.StartDate}} to {{.EndDate}}. Payment is due on arrival.</p>`)),
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send renders the named template and delivers it over SMTP. Callers treat
// failures as non-fatal; the booking flow never depends on email delivery.
func (m *SMTPMailer) Send(recipient, subject, templateName string, data map[string]any) error {
	tmpl, ok := templates[templateName]
	if !ok {
		return errs.New(fmt.Sprintf("unknown email template %q", templateName))
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errs.Wrap(err, "failed to render email template")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	return nil
}
