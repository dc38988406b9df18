package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testWorker() *Worker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewWorker(nil, "test:jobs", 1, 0, logger)
}

func TestWorker_DispatchCallsRegisteredHandler(t *testing.T) {
	w := testWorker()

	var got *Job
	w.Register(TypeRegenIndexCache, func(ctx context.Context, job *Job) error {
		got = job
		return nil
	})

	job := &Job{ID: "abc", Type: TypeRegenIndexCache}
	w.dispatch(context.Background(), job)

	assert.NotNil(t, got)
	assert.Equal(t, "abc", got.ID)
}

func TestWorker_DispatchDropsUnknownType(t *testing.T) {
	w := testWorker()

	called := false
	w.Register(TypeActivationEmail, func(ctx context.Context, job *Job) error {
		called = true
		return nil
	})

	w.dispatch(context.Background(), &Job{ID: "x", Type: "email:unknown"})
	assert.False(t, called)
}

func TestWorker_DispatchSwallowsHandlerError(t *testing.T) {
	w := testWorker()

	w.Register(TypeActivationEmail, func(ctx context.Context, job *Job) error {
		return errors.New("smtp down")
	})

	// No retry, no panic: the error is logged and the job dropped
	w.dispatch(context.Background(), &Job{ID: "x", Type: TypeActivationEmail})
}

func TestJobPayloadRoundTrip(t *testing.T) {
	payload := ActivationEmailPayload{
		UserID:   7,
		Username: "alice",
		Email:    "alice@example.com",
		Token:    "tok",
	}
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)

	job := Job{ID: "j1", Type: TypeActivationEmail, Payload: raw}
	data, err := json.Marshal(job)
	assert.NoError(t, err)

	var decoded Job
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeActivationEmail, decoded.Type)

	var decodedPayload ActivationEmailPayload
	assert.NoError(t, json.Unmarshal(decoded.Payload, &decodedPayload))
	assert.Equal(t, uint(7), decodedPayload.UserID)
	assert.Equal(t, "alice", decodedPayload.Username)
}
