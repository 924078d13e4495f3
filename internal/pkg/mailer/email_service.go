package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPaymentConfirmation(toEmail, planName string, amount float64, currency, endDate string) error
	SendPlanChangeNotice(toEmail, oldPlan, newPlan, endDate string) error
	SendResetToken(toEmail, token string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendPaymentConfirmation(toEmail, planName string, amount float64, currency, endDate string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to VistraTV!</h2>
			<p>Your payment was received and your subscription is now active.</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;">Plan</td><td><strong>%s</strong></td></tr>
				<tr><td style="padding: 4px 12px 4px 0;">Amount</td><td><strong>%.2f %s</strong></td></tr>
				<tr><td style="padding: 4px 12px 4px 0;">Active until</td><td><strong>%s</strong></td></tr>
			</table>
			<p>You can manage your subscription any time from your <a href="%s/account">account page</a>.</p>
		</div>
	`, planName, amount, currency, endDate, s.frontendURL)

	return s.send(toEmail, "Your VistraTV subscription is active", body)
}

func (s *emailService) SendPlanChangeNotice(toEmail, oldPlan, newPlan, endDate string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your plan has changed</h2>
			<p>Your subscription moved from <strong>%s</strong> to <strong>%s</strong>.</p>
			<p>Your current period now runs until <strong>%s</strong>.</p>
			<p>If you didn't request this change, please contact support.</p>
		</div>
	`, oldPlan, newPlan, endDate)

	return s.send(toEmail, "Your VistraTV plan was updated", body)
}

func (s *emailService) SendResetToken(toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password Reset Request</h2>
			<p>You requested to reset your password. Click the button below to proceed:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>This link will expire in 1 hour.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, resetLink, resetLink)

	return s.send(toEmail, "Reset Your Password", body)
}
