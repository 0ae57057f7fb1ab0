package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	domainemail "club_birthday_notifier/internal/domain/email"
)

// SMTPSender delivers messages over SMTP with implicit TLS (the Gmail
// port-465 path). There is no SMTP client library anywhere in our
// dependency set worth pulling in for one daily send, so the session and
// the MIME envelope are built by hand.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one message. The context covers connection establishment;
// the SMTP dialogue itself relies on server timeouts, matching the
// blocking-call model the notifier assumes for all collaborators.
func (s *SMTPSender) Send(ctx context.Context, msg *domainemail.Message) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("error connecting to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("error starting SMTP session: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("error setting envelope sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("error setting envelope recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("error opening message body: %w", err)
	}
	raw, err := buildMIME(s.from, msg)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("error writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error finalizing message body: %w", err)
	}

	return client.Quit()
}
