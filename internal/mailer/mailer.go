package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"dog-daycare-backend/config"
	"dog-daycare-backend/internal/model"
)

// Mailer sends booking confirmations to owners. Delivery is fire-and-forget:
// failures are logged, never surfaced to the request that triggered them.
type Mailer interface {
	SendBookingConfirmation(to string, bookings []model.Booking)
}

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from the mail configuration.
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendBookingConfirmation mails the owner a summary of newly created bookings.
func (m *SMTPMailer) SendBookingConfirmation(to string, bookings []model.Booking) {
	if to == "" || len(bookings) == 0 {
		return
	}

	body := "Your daycare bookings are confirmed:\n"
	for _, b := range bookings {
		kind := "full day"
		if b.IsHalfDay {
			kind = "half day"
		}
		body += fmt.Sprintf("  - %s (%s)\n", b.Date.Format("2006-01-02"), kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Daycare booking confirmation")
	msg.SetBody("text/plain", body)

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("Failed to send booking confirmation to %s: %v", to, err)
		}
	}()
}

// NoopMailer is used when mail is disabled in config, and in tests.
type NoopMailer struct{}

func (NoopMailer) SendBookingConfirmation(string, []model.Booking) {}
