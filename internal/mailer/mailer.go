package mailer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/salesprofoma/kc-backend/internal/apperrors"
	"github.com/salesprofoma/kc-backend/internal/config"
	"github.com/salesprofoma/kc-backend/internal/model"
)

// Sender delivers fully built messages. The production implementation dials
// the configured SMTP transport; tests inject a capturing fake.
type Sender interface {
	Send(msgs ...*mail.Msg) error
}

// Result reports which of the two notification messages went out.
type Result struct {
	OwnerSent        bool `json:"mailed"`
	ConfirmationSent bool `json:"confirmationMailed"`
}

// Mailer sends the owner notification and the customer confirmation for a
// stored lead. Sends are best-effort: the lead is already persisted when
// Notify runs, and a failure here never rolls it back.
type Mailer struct {
	cfg          config.MailConfig
	businessName string
	sender       Sender
}

// New builds a Mailer that delivers over SMTP.
func New(cfg config.MailConfig, businessName string) *Mailer {
	return &Mailer{
		cfg:          cfg,
		businessName: businessName,
		sender:       &smtpSender{cfg: cfg},
	}
}

// NewWithSender builds a Mailer with a custom delivery mechanism.
func NewWithSender(cfg config.MailConfig, businessName string, sender Sender) *Mailer {
	return &Mailer{cfg: cfg, businessName: businessName, sender: sender}
}

// Configured reports whether the mail transport and owner destination are
// fully set up. Absence of either is a configuration error, not a transient
// failure.
func (m *Mailer) Configured() error {
	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "mail transport not configured")
	}
	if m.cfg.OwnerTo == "" {
		return apperrors.Wrap(apperrors.ErrConfiguration, "owner address not configured")
	}
	return nil
}

// Notify sends the owner notification followed by the customer confirmation.
// Both sends are attempted independently; failures of either are joined into
// a single notification error alongside the partial result.
func (m *Mailer) Notify(lead model.Lead) (Result, error) {
	if err := m.Configured(); err != nil {
		return Result{}, err
	}

	var result Result
	var sendErrs []error

	owner, err := m.ownerMessage(lead)
	if err == nil {
		err = m.sender.Send(owner)
	}
	if err != nil {
		sendErrs = append(sendErrs, err)
	} else {
		result.OwnerSent = true
	}

	confirmation, err := m.confirmationMessage(lead)
	if err == nil {
		err = m.sender.Send(confirmation)
	}
	if err != nil {
		sendErrs = append(sendErrs, err)
	} else {
		result.ConfirmationSent = true
	}

	if len(sendErrs) > 0 {
		return result, apperrors.Wrap(apperrors.ErrNotification, "sending mail: %v", errors.Join(sendErrs...))
	}
	return result, nil
}

// from returns the sender address, falling back to the SMTP username.
func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

// ownerMessage summarizes the lead for the business operator. Reply-To is the
// customer's submitted address so the business can answer directly.
func (m *Mailer) ownerMessage(lead model.Lead) (*mail.Msg, error) {
	body, err := renderOwnerBody(m.businessName, lead)
	if err != nil {
		return nil, err
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return nil, err
	}
	if err := msg.To(m.cfg.OwnerTo); err != nil {
		return nil, err
	}
	if err := msg.ReplyTo(lead.Email); err != nil {
		return nil, err
	}
	msg.Subject("New lead #" + strconv.FormatInt(lead.Id, 10) + ": " + lead.Service)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

// confirmationMessage acknowledges receipt to the customer, referencing the
// assigned lead id and echoing the submitted details.
func (m *Mailer) confirmationMessage(lead model.Lead) (*mail.Msg, error) {
	body, err := renderConfirmationBody(m.businessName, lead)
	if err != nil {
		return nil, err
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return nil, err
	}
	if err := msg.To(lead.Email); err != nil {
		return nil, err
	}
	msg.Subject("We received your request - " + m.businessName)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

// smtpSender dials the SMTP transport once per delivery. Port 465 means
// implicit TLS from connection start; port 587 means mandatory STARTTLS.
type smtpSender struct {
	cfg config.MailConfig
}

func (s *smtpSender) Send(msgs ...*mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(SanitizeSecret(s.cfg.Password)),
	}
	switch s.cfg.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSend(msgs...)
}

// SanitizeSecret strips all internal whitespace from a credential secret.
// Provider app passwords are often displayed in spaced groups and get
// copy-pasted that way.
func SanitizeSecret(secret string) string {
	return strings.Join(strings.Fields(secret), "")
}
