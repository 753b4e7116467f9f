package service

import (
	"bitwise74/job-portal/config"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers verification links. Delivery is best effort, callers only
// log failures.
type Mailer interface {
	SendVerification(to, token string) error
}

// VerificationLink points at the frontend page that posts the token back
func VerificationLink(frontendURL, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(frontendURL, "/"), url.QueryEscape(token))
}

type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

func NewSMTPMailer(c config.Mail, frontendURL string) *SMTPMailer {
	username := c.Username
	if username == "" {
		username = c.SenderAddress
	}

	return &SMTPMailer{
		dialer:      gomail.NewDialer(c.Host, c.Port, username, c.Password),
		from:        c.SenderAddress,
		frontendURL: frontendURL,
	}
}

func (m *SMTPMailer) SendVerification(to, token string) error {
	if strings.EqualFold(to, m.from) {
		return errors.New("invalid email address")
	}

	link := VerificationLink(m.frontendURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email to start using the job portal")
	msg.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.", link))
	msg.AddAlternative("text/plain", "Open this link to verify your account: "+link)

	return m.dialer.DialAndSend(msg)
}

// LogMailer prints links instead of sending them, used when mail is disabled
type LogMailer struct {
	FrontendURL string
}

func (m LogMailer) SendVerification(to, token string) error {
	// The link is a live credential, keep it out of production logs
	zap.L().Debug("Verification mail not sent, mail is disabled",
		zap.String("link", VerificationLink(m.FrontendURL, token)))
	return nil
}
