package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional email. The rest of the application treats
// mail as an external collaborator behind this interface.
type Sender interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPSender sends mail through a plain SMTP transport.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	// logoPath points at the inline logo attachment; empty skips the embed
	logoPath string
}

// NewSMTPSender builds a sender for the given SMTP transport settings.
func NewSMTPSender(host string, port int, username, password, from, logoPath string) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		logoPath: logoPath,
	}
}

const logoTag = `
  <img src="cid:logo.png" alt="BeanBuzz" style="max-width: 140px;" />`

const resetBody = `<div style="font-family: Arial, sans-serif; max-width: 520px; margin: 0 auto;">%s
  <h2>Reset your BeanBuzz password</h2>
  <p>We received a request to reset your password. Click the button below to choose a new one. The link expires in one hour.</p>
  <p><a href="%s" style="display: inline-block; padding: 12px 24px; background: #6f4e37; color: #ffffff; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
  <p>If you didn't request this, you can safely ignore this email.</p>
</div>`

// body renders the reset email, including the inline logo only when one
// is configured so recipients never see a broken image.
func (s *SMTPSender) body(resetURL string) string {
	logo := ""
	if s.logoPath != "" {
		logo = logoTag
	}
	return fmt.Sprintf(resetBody, logo, resetURL)
}

// SendPasswordReset emails the reset link to the user.
func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "BeanBuzz password reset")
	m.SetBody("text/html", s.body(resetURL))
	if s.logoPath != "" {
		m.Embed(s.logoPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}
