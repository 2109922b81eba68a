package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bikefleet-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendBookingLinkedNotification(ctx context.Context, email, name, bookingCode string) error {
	subject := "Your booking is linked"
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s is now linked to your account. You can track your rental from the app.\n\nSafe riding!", name, bookingCode)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendRoleChangedNotification(ctx context.Context, email, name, newRole string) error {
	subject := "Your access level changed"
	body := fmt.Sprintf("Hello %s,\n\nYour role has been changed to: %s.\n\nIf you did not expect this, contact your depot owner.", name, newRole)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendWelcomeNotification(ctx context.Context, email, name string) error {
	subject := "Welcome aboard"
	body := fmt.Sprintf("Hello %s,\n\nYour account has been created. Link a booking code to get started.", name)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}
