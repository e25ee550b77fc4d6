// Package notify emails generated cover sheets to the operator inbox.
//
// Delivery is a convenience stage: when SMTP transport is not configured the
// dispatcher reports an unsent outcome without error, so environments without
// mail credentials degrade quietly instead of failing submissions.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/harborlight/intake/internal/form"
)

// Config carries SMTP transport settings. Host, From and Recipient are all
// required for the transport to count as configured.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Outcome reports one delivery attempt.
type Outcome struct {
	Sent     bool   `json:"sent"`
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Mailer sends cover-sheet emails to the single fixed operator recipient.
type Mailer struct {
	cfg   Config
	clock func() time.Time
	send  func(ctx context.Context, cfg Config, msg *mail.Msg) error
}

// NewMailer returns a Mailer. A nil clock defaults to time.Now.
func NewMailer(cfg Config, clock func() time.Time) *Mailer {
	if clock == nil {
		clock = time.Now
	}
	return &Mailer{cfg: cfg, clock: clock, send: smtpSend}
}

// Configured reports whether transport credentials are present.
func (m *Mailer) Configured() bool {
	return m != nil && m.cfg.Host != "" && m.cfg.From != "" && m.cfg.Recipient != ""
}

// Send emails the PDF as an attachment. A missing transport configuration is
// an expected outcome, not an error.
func (m *Mailer) Send(ctx context.Context, pdf []byte, data form.TransactionFormData, roleLabel string) (Outcome, error) {
	if !m.Configured() {
		return Outcome{Sent: false, Message: "email transport is not configured"}, nil
	}

	filename := Filename(roleLabel, m.clock())

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return Outcome{}, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		return Outcome{}, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject(data, roleLabel))
	msg.SetBodyString(mail.TypeTextPlain, body(data, roleLabel))
	if err := msg.AttachReader(filename, bytes.NewReader(pdf)); err != nil {
		return Outcome{}, fmt.Errorf("attach cover sheet: %w", err)
	}

	if err := m.send(ctx, m.cfg, msg); err != nil {
		return Outcome{}, fmt.Errorf("send cover sheet email: %w", err)
	}
	return Outcome{Sent: true, Filename: filename}, nil
}

func smtpSend(ctx context.Context, cfg Config, msg *mail.Msg) error {
	opts := []mail.Option{}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// Filename builds the attachment name from the role label and an ISO
// timestamp, replacing path-unsafe characters with underscores.
func Filename(roleLabel string, now time.Time) string {
	if roleLabel == "" {
		roleLabel = "Transaction"
	}
	base := roleLabel + "_Cover_Sheet_" + now.UTC().Format(time.RFC3339)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return base + ".pdf"
}

func subject(data form.TransactionFormData, roleLabel string) string {
	s := "Transaction Cover Sheet"
	if roleLabel != "" {
		s += " (" + roleLabel + ")"
	}
	if data.PropertyData != nil && data.PropertyData.Address != "" {
		s += ": " + data.PropertyData.Address
	}
	return s
}

func body(data form.TransactionFormData, roleLabel string) string {
	var b strings.Builder
	b.WriteString("A new transaction intake form was submitted.\n\n")
	if data.AgentData != nil && data.AgentData.Name != "" {
		fmt.Fprintf(&b, "Agent: %s\n", data.AgentData.Name)
	}
	if roleLabel != "" {
		fmt.Fprintf(&b, "Role: %s\n", roleLabel)
	}
	if data.PropertyData != nil && data.PropertyData.Address != "" {
		fmt.Fprintf(&b, "Property: %s\n", data.PropertyData.Address)
	}
	b.WriteString("\nThe cover sheet is attached.\n")
	return b.String()
}
