// Package mailer isolates outbound email behind an interface. Delivery is
// best-effort everywhere it is used: callers log failures and move on, a
// failed send never rolls back the transaction that triggered it.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"servicepro-server/config"
)

type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host   string
	port   int
	auth   smtp.Auth
	sender string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		host:   cfg.Host,
		port:   cfg.Port,
		auth:   auth,
		sender: cfg.Sender,
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.sender, strings.Join(to, ", "), subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return smtp.SendMail(addr, m.auth, m.sender, to, []byte(msg))
}

// LogMailer records outbound mail instead of delivering it. Used in
// development and tests, and whenever MAIL_ENABLED is off.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to []string, subject, body string) error {
	m.logger.Info("mail suppressed (delivery disabled)",
		zap.Strings("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// FromConfig picks the real SMTP transport or the logging stand-in.
func FromConfig(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.Enabled {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(logger)
}
