// Package mailer delivers notification emails over SMTP.
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends templated emails from a fixed sender address.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a mailer for the given SMTP endpoint.
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers a single HTML email.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
