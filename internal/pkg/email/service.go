// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/your-org/dailyfresh-backend/internal/config"
)

const activationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>Thanks for registering. Please confirm your email address to activate your account:</p>
        <p><a href="{{.ActivationURL}}" style="color: #2e8b57;">{{.ActivationURL}}</a></p>
        <p>This link expires in {{.ExpiryTime}}. If you did not register, you can ignore this email.</p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #666;">
            &copy; {{.Year}} {{.SiteName}}. All rights reserved.
        </p>
    </div>
</body>
</html>`

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>Your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}} has been received.</p>
        <table style="width: 100%; border-collapse: collapse;">
            <tr>
                <th style="text-align: left; border-bottom: 1px solid #ddd; padding: 8px;">Item</th>
                <th style="text-align: right; border-bottom: 1px solid #ddd; padding: 8px;">Qty</th>
                <th style="text-align: right; border-bottom: 1px solid #ddd; padding: 8px;">Price</th>
                <th style="text-align: right; border-bottom: 1px solid #ddd; padding: 8px;">Total</th>
            </tr>
            {{range .Items}}
            <tr>
                <td style="padding: 8px;">{{.Name}}</td>
                <td style="text-align: right; padding: 8px;">{{.Quantity}}</td>
                <td style="text-align: right; padding: 8px;">{{.Price}}</td>
                <td style="text-align: right; padding: 8px;">{{.Total}}</td>
            </tr>
            {{end}}
        </table>
        <p style="text-align: right;"><strong>Order total: {{.OrderTotal}}</strong></p>
        <p><a href="{{.OrderURL}}" style="color: #2e8b57;">View your order</a></p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #666;">
            &copy; {{.Year}} {{.SiteName}}. All rights reserved.
        </p>
    </div>
</body>
</html>`

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}

	service.templates["activation"] = template.Must(template.New("activation").Parse(activationTemplate))
	service.templates["order_confirmation"] = template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate))

	return service
}

// SendEmail sends an email over SMTP
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	return s.sendSMTPEmail(email)
}

// SendActivationEmail sends the account activation email to a new user
func (s *EmailService) SendActivationEmail(ctx context.Context, userEmail, userName, activationToken string) error {
	data := ActivationEmailData{
		EmailTemplateData: GetBaseTemplateData(
			s.config.Email.FromName,
			s.config.App.BaseURL,
			userName,
			userEmail,
		),
		ActivationURL: fmt.Sprintf("%s/api/v1/auth/activate/%s", s.config.App.BaseURL, activationToken),
		ExpiryTime:    "24 hours",
	}

	htmlContent, err := s.renderTemplate("activation", data)
	if err != nil {
		return fmt.Errorf("failed to render activation email template: %w", err)
	}

	email := &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Activate your %s account", s.config.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeActivation,
	}

	return s.SendEmail(ctx, email)
}

// SendOrderConfirmationEmail sends an order confirmation email
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderConfirmationData) error {
	data.EmailTemplateData = GetBaseTemplateData(
		s.config.Email.FromName,
		s.config.App.BaseURL,
		data.UserName,
		data.UserEmail,
	)

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	}

	return s.SendEmail(ctx, email)
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}
