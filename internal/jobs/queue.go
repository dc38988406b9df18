// internal/jobs/queue.go
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Job types handled by the worker
const (
	TypeActivationEmail   = "email:activation"
	TypeOrderConfirmation = "email:order_confirmation"
	TypeRegenIndexCache   = "cache:regen_index"
)

// Job is the envelope pushed onto the queue
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// ActivationEmailPayload asks the worker to mail an account activation link
type ActivationEmailPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// OrderConfirmationPayload asks the worker to mail an order confirmation
type OrderConfirmationPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	OrderID  string `json:"order_id"`
}

// Queue is a Redis-list backed job queue. Producers LPUSH, the worker
// BRPOPs, so jobs are delivered oldest-first.
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue creates a queue on the given Redis list key
func NewQueue(client *redis.Client, key string) *Queue {
	return &Queue{
		client: client,
		key:    key,
	}
}

// Enqueue pushes a job envelope onto the queue
func (q *Queue) Enqueue(ctx context.Context, jobType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", jobType, err)
	}

	job := Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.client.LPush(ctx, q.key, data).Err()
}

// EnqueueActivationEmail queues an activation email for a new user
func (q *Queue) EnqueueActivationEmail(ctx context.Context, userID uint, username, email, token string) error {
	return q.Enqueue(ctx, TypeActivationEmail, ActivationEmailPayload{
		UserID:   userID,
		Username: username,
		Email:    email,
		Token:    token,
	})
}

// EnqueueOrderConfirmation queues an order confirmation email
func (q *Queue) EnqueueOrderConfirmation(ctx context.Context, userID uint, username, email, orderID string) error {
	return q.Enqueue(ctx, TypeOrderConfirmation, OrderConfirmationPayload{
		UserID:   userID,
		Username: username,
		Email:    email,
		OrderID:  orderID,
	})
}

// EnqueueRegenIndexCache queues a homepage cache rebuild
func (q *Queue) EnqueueRegenIndexCache(ctx context.Context) error {
	return q.Enqueue(ctx, TypeRegenIndexCache, struct{}{})
}
