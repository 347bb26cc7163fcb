package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"nexoformar/internal/config"
)

// Sender delivers a one-time verification code to a recipient.
type Sender interface {
	SendCode(ctx context.Context, to, code string) error
}

// SMTPSender sends verification codes over SMTP with STARTTLS.
type SMTPSender struct {
	host     string
	port     string
	user     string
	password string
	from     string
	fromName string
}

// NewSMTPSender builds a sender from the configuration.
func NewSMTPSender(cfg config.Config) (*SMTPSender, error) {
	host := strings.TrimSpace(cfg.SMTPHost)
	if host == "" {
		return nil, errors.New("smtp host must not be empty")
	}
	port := strings.TrimSpace(cfg.SMTPPort)
	if port == "" {
		port = "587"
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     strings.TrimSpace(cfg.SMTPUser),
		password: cfg.SMTPPassword,
		from:     strings.TrimSpace(cfg.MailFrom),
		fromName: strings.TrimSpace(cfg.MailFromName),
	}, nil
}

// SendCode delivers the verification code. Any failure is returned to the
// caller; the auth flows treat it as a failed request.
func (s *SMTPSender) SendCode(ctx context.Context, to, code string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("recipient must not be empty")
	}

	fromHeader := s.from
	if s.fromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Verification code</h2>
  <p>Your verification code is:</p>
  <h1 style="letter-spacing: 4px;">%s</h1>
  <p>This code expires in 15 minutes.</p>
</div>`, code)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		"Subject: Verification code - NexoFormar",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	return s.send(ctx, to, []byte(msg))
}

func (s *SMTPSender) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	dialer := net.Dialer{Timeout: 8 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	// Deadline covers the whole exchange so a stalled server cannot hang
	// the request.
	deadline := time.Now().Add(15 * time.Second)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer func() { _ = client.Quit() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.user != "" {
		authn := smtp.PlainAuth("", s.user, s.password, s.host)
		if err := client.Auth(authn); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	return writer.Close()
}

var _ Sender = (*SMTPSender)(nil)
