// Package mailer sends transactional email over SMTP.
package mailer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("smtp not configured")

type Config struct {
	Host string
	Port string
	User string
	Pass string
	// From is the envelope sender and the default From address.
	From string
}

type Mailer struct {
	cfg  Config
	log  *zap.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// Email is one message. FromName and FromAddr, when set, replace the
// configured sender in the From header.
type Email struct {
	To       string
	FromName string
	FromAddr string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

func (m *Mailer) Send(e Email) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		m.log.Warn("email not sent: smtp not configured", zap.String("to", e.To), zap.String("subject", e.Subject))
		return ErrNotConfigured
	}

	addr := e.FromAddr
	if addr == "" {
		addr = m.cfg.From
	}
	// Non-ASCII display names and subjects go out RFC 2047 encoded.
	from := addr
	if e.FromName != "" {
		from = (&mail.Address{Name: headerSafe(e.FromName), Address: addr}).String()
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", e.To)
	if e.ReplyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", e.ReplyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerSafe(e.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if e.HTMLBody != "" {
		boundary := randomBoundary()
		fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.TextBody)
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
		fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(e.TextBody)
	}

	var auth smtp.Auth
	if m.cfg.User != "" && m.cfg.Pass != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{e.To}, msg.Bytes()); err != nil {
		m.log.Error("failed to send email",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func randomBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return "----=_Part_" + hex.EncodeToString(b)
}
