package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/dailyfresh-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "dailyfresh-test",
			BaseURL: "http://localhost:8080",
		},
		Email: config.EmailConfig{
			FromEmail: "noreply@dailyfresh.example.com",
			FromName:  "Dailyfresh",
		},
	}
}

func TestEmailService_RenderActivationTemplate(t *testing.T) {
	svc := NewEmailService(testConfig())

	data := ActivationEmailData{
		EmailTemplateData: GetBaseTemplateData("Dailyfresh", "http://localhost:8080", "alice", "alice@example.com"),
		ActivationURL:     "http://localhost:8080/api/v1/auth/activate/tok123",
		ExpiryTime:        "24 hours",
	}

	html, err := svc.renderTemplate("activation", data)
	assert.NoError(t, err)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "activate/tok123")
	assert.Contains(t, html, "24 hours")
}

func TestEmailService_RenderOrderConfirmationTemplate(t *testing.T) {
	svc := NewEmailService(testConfig())

	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData("Dailyfresh", "http://localhost:8080", "bob", "bob@example.com"),
		OrderNumber:       "2026083112000042",
		OrderDate:         "August 31, 2026",
		OrderTotal:        "¥69.60",
		OrderURL:          "http://localhost:8080/api/v1/orders/2026083112000042",
		Items: []OrderItem{
			{Name: "Strawberry 500g", Quantity: 2, Price: "¥19.80", Total: "¥39.60"},
		},
	}

	html, err := svc.renderTemplate("order_confirmation", data)
	assert.NoError(t, err)
	assert.Contains(t, html, "2026083112000042")
	assert.Contains(t, html, "Strawberry 500g")
	assert.Contains(t, html, "¥69.60")
}

func TestEmailService_UnknownTemplate(t *testing.T) {
	svc := NewEmailService(testConfig())

	_, err := svc.renderTemplate("no_such_template", nil)
	assert.Error(t, err)
}
