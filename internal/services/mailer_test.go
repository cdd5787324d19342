package services

import (
	"testing"

	"github.com/ledgerline/firmdesk/backend/internal/config"
)

func TestMailerService_DisabledDropsMail(t *testing.T) {
	s := NewMailerService(config.SMTPConfig{Enabled: false})

	if s.Enabled() {
		t.Error("Enabled() should be false")
	}

	// Disabled mailer drops the message without error
	if err := s.Send("acct1@example.com", "Reminder", "body"); err != nil {
		t.Errorf("Send() error = %v, expected nil", err)
	}
}

func TestMailerService_EnabledNeedsHost(t *testing.T) {
	s := NewMailerService(config.SMTPConfig{Enabled: true})

	if s.Enabled() {
		t.Error("Enabled() should be false when no host is configured")
	}
}
