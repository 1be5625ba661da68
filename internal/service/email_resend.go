package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resendlabs/resend-go"
)

// ResendEmailSender delivers transactional mail through the Resend API.
type ResendEmailSender struct {
	client           *resend.Client
	from             string
	otpExpireMinutes int
}

func NewResendEmailSender(apiKey string, from string, otpExpireMinutes int) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{otpExpireMinutes: otpExpireMinutes}
	}
	return &ResendEmailSender{
		client:           resend.NewClient(apiKey),
		from:             from,
		otpExpireMinutes: otpExpireMinutes,
	}
}

func (s *ResendEmailSender) SendOTPEmail(ctx context.Context, email string, code string) error {
	subject := "Verify your email - OTP"
	html := fmt.Sprintf(
		"<h2>Email Verification</h2><p>Your OTP is:</p><h1>%s</h1><p>This OTP is valid for %d minutes.</p>",
		code, s.otpExpireMinutes,
	)
	text := fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", code, s.otpExpireMinutes)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) SendAccountStatusEmail(ctx context.Context, email string, active bool) error {
	status := "Deactivated"
	if active {
		status = "Activated"
	}
	subject := fmt.Sprintf("Account %s", status)
	html := fmt.Sprintf(
		"<h3>Account Status Update</h3><p>Your account has been <strong>%s</strong> by the administrator.</p><p>If you have questions, contact support.</p>",
		status,
	)
	text := fmt.Sprintf("Your account has been %s by the administrator.", strings.ToLower(status))
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, html string, text string) error {
	if s.client == nil {
		return errors.New("email sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	return err
}
