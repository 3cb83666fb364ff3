package main

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
)

// mailNotifier emails the site owner about each stored submission.
type mailNotifier struct {
	cfg  config.EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newMailNotifier(cfg config.EmailConfig) *mailNotifier {
	return &mailNotifier{cfg: cfg, send: smtp.SendMail}
}

func (m *mailNotifier) Notify(ctx context.Context, s content.Submission) error {
	if m.cfg.SMTPUser == "" || m.cfg.SMTPPass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	if err := m.send(addr, auth, m.cfg.SMTPUser, []string{m.cfg.ToEmail}, m.message(s)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *mailNotifier) message(s content.Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(s.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, s.Name, s.Email, s.Message)

	return []byte("To: " + m.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.SMTPUser + "\r\n" +
		"Reply-To: " + headerSafe(s.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe keeps user input on a single header line.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
