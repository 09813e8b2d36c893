package mailer

import (
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	mail "github.com/go-mail/mail"

	"github.com/skillyug/skillyug-api/config"
)

// smtpTimeout bounds connect, greeting and send. A dead relay must
// produce an error, not a hung request.
const smtpTimeout = 10 * time.Second

// Message is a single transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers transactional email. Verify checks that the relay is
// reachable and accepts our credentials without sending anything; Send
// delivers one message and returns its message id.
type Mailer interface {
	Verify() error
	Send(msg *Message) (string, error)
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates an SMTPMailer from the email configuration.
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = fmt.Sprintf("\"Skillyug\" <%s>", cfg.Username)
	}

	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
	}
}

func (m *SMTPMailer) dialer() *mail.Dialer {
	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	d.Timeout = smtpTimeout
	// Implicit TLS on 465, STARTTLS negotiation otherwise
	d.SSL = m.port == 465
	// Some legacy relays present certificates that don't match their
	// public hostname; skip verification for compatibility with them.
	d.TLSConfig = &tls.Config{
		ServerName:         m.host,
		InsecureSkipVerify: true, //nolint:gosec
	}
	return d
}

// Verify opens and closes an SMTP session to prove the relay is
// reachable and the credentials work.
func (m *SMTPMailer) Verify() error {
	sc, err := m.dialer().Dial()
	if err != nil {
		return fmt.Errorf("smtp verify: %w", err)
	}
	if err := sc.Close(); err != nil {
		return fmt.Errorf("smtp verify: %w", err)
	}
	return nil
}

// Send delivers a single message and returns the generated message id.
func (m *SMTPMailer) Send(msg *Message) (string, error) {
	messageID, err := m.generateMessageID()
	if err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	em := mail.NewMessage()
	em.SetHeader("From", m.from)
	em.SetHeader("To", msg.To)
	em.SetHeader("Subject", msg.Subject)
	em.SetHeader("Message-ID", messageID)

	// multipart/alternative: plain text first, HTML preferred
	if msg.Text != "" {
		em.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text == "" {
			em.SetBody("text/html", msg.HTML)
		} else {
			em.AddAlternative("text/html", msg.HTML)
		}
	}

	if err := m.dialer().DialAndSend(em); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	return messageID, nil
}

func (m *SMTPMailer) generateMessageID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate message id: %w", err)
	}

	domain := m.host
	if at := strings.LastIndex(m.username, "@"); at >= 0 {
		domain = m.username[at+1:]
	}

	return fmt.Sprintf("<%s@%s>", hex.EncodeToString(buf), domain), nil
}
