// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeActivation        EmailType = "activation"
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName  string `json:"site_name"`
	SiteURL   string `json:"site_url"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
}

// ActivationEmailData contains data for the account activation email
type ActivationEmailData struct {
	EmailTemplateData
	ActivationURL string `json:"activation_url"`
	ExpiryTime    string `json:"expiry_time"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderNumber string      `json:"order_number"`
	OrderDate   string      `json:"order_date"`
	OrderTotal  string      `json:"order_total"`
	OrderURL    string      `json:"order_url"`
	Items       []OrderItem `json:"items"`
}

// OrderItem represents an item in the order confirmation
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:  siteName,
		SiteURL:   siteURL,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
