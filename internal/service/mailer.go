package service

import (
	"fmt"
	"net/smtp"

	"lexihub/internal/config"
)

// Mailer delivers verification codes. The auth service treats delivery
// failure as non-fatal so a flaky SMTP relay cannot block logins in
// development.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host:     cfg.EmailHost,
		port:     cfg.EmailPort,
		username: cfg.EmailUsername,
		password: cfg.EmailPassword,
		from:     cfg.EmailFrom,
	}
}

func (m *smtpMailer) SendVerificationCode(to, code string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Your verification code\r\n" +
		"\r\n" +
		"Your verification code is: " + code + "\r\n" +
		"It expires in 15 minutes.\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
