package server

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Mailer delivers a stored contact message.
type Mailer interface {
	Send(ctx context.Context, m *Message) error
}

// SMTPMailer relays messages through an SMTP server with PLAIN auth.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string

	// send is smtp.SendMail; tests replace it.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for host:port.
func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, send: smtp.SendMail}
}

// Send implements Mailer. The context is only checked before dialing;
// net/smtp has no cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.User == "" || m.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	if err := m.send(addr, auth, m.User, []string{msg.To}, composeMail(m.User, msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func composeMail(from string, m *Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	if m.HTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + headerSafe(m.Subject) + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	if m.FromEmail != "" {
		b.WriteString("Reply-To: " + headerSafe(m.FromEmail) + "\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
