package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetBody_NoLogoOmitsInlineImage(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "no-reply@beanbuzz.com", "")

	body := s.body("https://beanbuzz.com/reset-password?token=abc")

	assert.NotContains(t, body, "cid:logo.png")
	assert.Contains(t, body, "https://beanbuzz.com/reset-password?token=abc")
}

func TestResetBody_IncludesLogoWhenConfigured(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "no-reply@beanbuzz.com", "assets/logo.png")

	assert.Contains(t, s.body("https://beanbuzz.com/reset"), "cid:logo.png")
}
