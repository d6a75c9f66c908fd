package email

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain text email over SMTP. A Mailer without a host is a no-op.
type Mailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

// Enabled reports whether SMTP settings were provided.
func (m *Mailer) Enabled() bool {
	return m != nil && m.Host != "" && m.Sender != ""
}

// SendEmail sends a plain text email using SMTP.
func (m *Mailer) SendEmail(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := m.Host + ":" + m.Port

	err := smtp.SendMail(address, auth, m.Sender, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
