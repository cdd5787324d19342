package services

import (
	"fmt"

	mail "github.com/go-mail/mail/v2"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
)

// MailerService sends transactional email over SMTP. When SMTP is not
// configured the service logs the message and drops it, so callers never
// need to branch on whether mail is enabled.
type MailerService struct {
	cfg config.SMTPConfig
}

func NewMailerService(cfg config.SMTPConfig) *MailerService {
	return &MailerService{cfg: cfg}
}

func (s *MailerService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Host != ""
}

// Send delivers a plain-text message to a single recipient.
func (s *MailerService) Send(to, subject, body string) error {
	if !s.Enabled() {
		logger.Debug().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP disabled, dropping email")
		return nil
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
