// Package notification sends email alerts (new website leads) over SMTP.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// Message is one rendered email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends through an SMTP server.
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer for cfg.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

// Build converts msg into a gomail message.
func (m *SMTPMailer) Build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return gm
}

// Send delivers msg. ctx is only checked before dialing; gomail has no cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(m.Build(msg))
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, Message) error { return nil }

var (
	defaultOnce   sync.Once
	defaultMailer Mailer
)

// DefaultMailer returns the mailer configured from the environment; a no-op when SMTP is
// not configured.
func DefaultMailer() Mailer {
	defaultOnce.Do(func() {
		cfg := global.MongoDB_ServerConfig
		if cfg == nil || cfg.SMTPHost == "" {
			defaultMailer = noopMailer{}
			return
		}
		from := cfg.SMTPFrom
		if from == "" {
			from = cfg.SMTPUsername
		}
		defaultMailer = NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     from,
		})
	})
	return defaultMailer
}

// SendAsync delivers msg in the background. Failures are logged and otherwise ignored.
func SendAsync(m Mailer, msg Message) {
	go utility.GoProtect(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil {
			logger.WithModule("notification").WithError(err).WithField("subject", msg.Subject).Warn("failed to send email")
		}
	})
}

// ====================================
// TEMPLATES
// ====================================

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>New enquiry from the website</h2>
<table cellpadding="6" style="border-collapse:collapse">
<tr><td><b>Lead ID</b></td><td>{{.ID}}</td></tr>
<tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
<tr><td><b>Mobile</b></td><td>{{.MobileNumber}}</td></tr>
{{if .Email}}<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>{{end}}
{{if .Service}}<tr><td><b>Service</b></td><td>{{.Service}}</td></tr>{{end}}
{{if .Message}}<tr><td><b>Message</b></td><td>{{.Message}}</td></tr>{{end}}
</table>`))

// LeadAlert is the content of a new website lead email.
type LeadAlert struct {
	ID           string
	Name         string
	MobileNumber string
	Email        string
	Service      string
	Message      string
}

// RenderLeadAlert renders the alert sent to recipients.
func RenderLeadAlert(lead LeadAlert, recipients []string) (Message, error) {
	var buf bytes.Buffer
	if err := leadTemplate.Execute(&buf, lead); err != nil {
		return Message{}, fmt.Errorf("render lead alert: %w", err)
	}
	return Message{
		To:      recipients,
		Subject: fmt.Sprintf("New website lead: %s", lead.Name),
		HTML:    buf.String(),
	}, nil
}
