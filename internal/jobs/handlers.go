// internal/jobs/handlers.go
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/order"
	"github.com/your-org/dailyfresh-backend/internal/pkg/email"
)

// Handlers bundles the job handlers the worker binary registers
type Handlers struct {
	config          *config.Config
	emailService    *email.EmailService
	catalogService  *catalog.Service
	homepageService *catalog.HomepageService
	orderService    *order.Service
}

// NewHandlers creates the job handler set
func NewHandlers(cfg *config.Config, emailService *email.EmailService, catalogService *catalog.Service, homepageService *catalog.HomepageService, orderService *order.Service) *Handlers {
	return &Handlers{
		config:          cfg,
		emailService:    emailService,
		catalogService:  catalogService,
		homepageService: homepageService,
		orderService:    orderService,
	}
}

// RegisterAll binds every handler to its job type
func (h *Handlers) RegisterAll(w *Worker) {
	w.Register(TypeActivationEmail, h.HandleActivationEmail)
	w.Register(TypeOrderConfirmation, h.HandleOrderConfirmation)
	w.Register(TypeRegenIndexCache, h.HandleRegenIndexCache)
}

// HandleActivationEmail mails the activation link to a new user
func (h *Handlers) HandleActivationEmail(ctx context.Context, job *Job) error {
	var payload ActivationEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid activation payload: %w", err)
	}

	return h.emailService.SendActivationEmail(ctx, payload.Email, payload.Username, payload.Token)
}

// HandleOrderConfirmation mails an order summary to the buyer
func (h *Handlers) HandleOrderConfirmation(ctx context.Context, job *Job) error {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid order confirmation payload: %w", err)
	}

	info, err := h.orderService.GetOrder(ctx, payload.UserID, payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", payload.OrderID, err)
	}

	data := email.OrderConfirmationData{
		OrderNumber: info.OrderID,
		OrderDate:   info.CreatedAt.Format("January 2, 2006"),
		OrderTotal:  formatCents(info.GrandTotal()),
		OrderURL:    fmt.Sprintf("%s/api/v1/orders/%s", h.config.App.BaseURL, info.OrderID),
	}
	data.UserName = payload.Username
	data.UserEmail = payload.Email

	skuIDs := make([]uint, 0, len(info.Goods))
	for _, line := range info.Goods {
		skuIDs = append(skuIDs, line.SKUID)
	}
	skus, err := h.catalogService.GetSKUs(skuIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve order lines: %w", err)
	}
	names := make(map[uint]string, len(skus))
	for _, sku := range skus {
		names[sku.ID] = sku.Name
	}

	for _, line := range info.Goods {
		name, ok := names[line.SKUID]
		if !ok {
			name = fmt.Sprintf("SKU %d", line.SKUID)
		}
		data.Items = append(data.Items, email.OrderItem{
			Name:     name,
			Quantity: line.Count,
			Price:    formatCents(line.Price),
			Total:    formatCents(line.Price * int64(line.Count)),
		})
	}

	return h.emailService.SendOrderConfirmationEmail(ctx, data)
}

// HandleRegenIndexCache rebuilds the cached homepage context
func (h *Handlers) HandleRegenIndexCache(ctx context.Context, job *Job) error {
	_, err := h.homepageService.Rebuild(ctx)
	return err
}

// formatCents renders a cent amount as a currency string
func formatCents(cents int64) string {
	return fmt.Sprintf("¥%.2f", float64(cents)/100)
}
