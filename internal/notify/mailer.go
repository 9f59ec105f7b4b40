package notify

import (
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer - интерфейс для отправки писем
type Mailer interface {
	SendIncidentReport(incident *models.IncidentReport) error
	SendTwoFactorCode(email, name, code string) error
}

// SendGridMailer - реализация Mailer через SendGrid
type SendGridMailer struct {
	cfg *config.Config
}

// NewSendGridMailer создает новый SendGridMailer
func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{cfg: cfg}
}

// SendIncidentReport отправляет уведомление о новом обращении на адрес администратора
func (m *SendGridMailer) SendIncidentReport(incident *models.IncidentReport) error {
	if m.cfg.IncidentNotifyEmail == "" {
		return nil
	}

	subject := "New Incident Report Submitted"
	plainText := fmt.Sprintf(
		"A new incident report was submitted.\n\nTitle: %s\nSeverity: %s\nReported by: %s\nCoordinates: %f, %f\n\n%s",
		incident.Title, incident.Severity, incident.Creator,
		incident.Latitude, incident.Longitude, incident.Description,
	)
	htmlContent := fmt.Sprintf(
		"<p>A new incident report was submitted.</p><p><b>Title:</b> %s<br><b>Severity:</b> %s<br><b>Reported by:</b> %s<br><b>Coordinates:</b> %f, %f</p><p>%s</p>",
		incident.Title, incident.Severity, incident.Creator,
		incident.Latitude, incident.Longitude, incident.Description,
	)

	return m.send(m.cfg.IncidentNotifyEmail, "BVMS Admin", subject, plainText, htmlContent)
}

// SendTwoFactorCode отправляет письмо с кодом подтверждения входа
func (m *SendGridMailer) SendTwoFactorCode(email, name, code string) error {
	subject := "Your BVMS Verification Code"
	plainText := fmt.Sprintf("Your verification code is: %s. This code will expire in 10 minutes.", code)
	htmlContent := fmt.Sprintf("<p>Your verification code is: <b>%s</b></p><p>This code will expire in 10 minutes.</p>", code)

	return m.send(email, name, subject, plainText, htmlContent)
}

func (m *SendGridMailer) send(toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(m.cfg.MailFromName, m.cfg.MailFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}
