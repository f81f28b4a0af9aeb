package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"churchapi/internal/model"
)

// Config carries the SMTP settings from config.yaml.
type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Mailer sends the transactional mail the notification worker dispatches.
type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendDonationReceipt mails the receipt for a Successful donation.
func (m *Mailer) SendDonationReceipt(d *model.Donation) error {
	subject := fmt.Sprintf("Donation receipt %s", d.ReceiptNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your %s donation of %.2f %s.\nYour receipt number is %s.\n\nGod bless you!",
		d.DonorName, d.Purpose, d.Amount, d.Currency, d.ReceiptNumber,
	)
	return m.send(d.DonorEmail, subject, body)
}

// SendWelcome mails the newsletter welcome note to a new subscriber.
func (m *Mailer) SendWelcome(email, name string) error {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}
	body := fmt.Sprintf(
		"%s,\n\nYou are now subscribed to our newsletter. We are glad to have you!",
		greeting,
	)
	return m.send(email, "Welcome to our newsletter", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		m.log.Warn().Err(err).Str("to", to).Msg("failed to send email")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
