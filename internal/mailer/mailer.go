// Package mailer is the notification-sender collaborator: delivery is
// best-effort and a failure is never surfaced to the request that
// triggered it.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Sender delivers a plain-text message to a single recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// LogSender writes messages to the log instead of delivering them. Used in
// development when no SMTP host is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.logger.Info("mail (not delivered)", "to", to, "subject", subject, "body", body)
	return nil
}
