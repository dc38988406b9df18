// internal/jobs/worker.go
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Handler processes one job. Errors are logged, not retried.
type Handler func(ctx context.Context, job *Job) error

// Worker pops jobs from the queue and dispatches them to registered
// handlers on a bounded goroutine pool
type Worker struct {
	client      *redis.Client
	key         string
	popTimeout  time.Duration
	concurrency int
	logger      *logrus.Logger
	handlers    map[string]Handler
	wg          sync.WaitGroup
}

// NewWorker creates a worker reading from the given Redis list key
func NewWorker(client *redis.Client, key string, concurrency int, popTimeout time.Duration, logger *logrus.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Worker{
		client:      client,
		key:         key,
		popTimeout:  popTimeout,
		concurrency: concurrency,
		logger:      logger,
		handlers:    make(map[string]Handler),
	}
}

// Register binds a handler to a job type. Must be called before Run.
func (w *Worker) Register(jobType string, handler Handler) {
	w.handlers[jobType] = handler
}

// Run blocks popping jobs until the context is cancelled, then waits for
// in-flight jobs to finish
func (w *Worker) Run(ctx context.Context) error {
	w.logger.WithFields(logrus.Fields{
		"queue":       w.key,
		"concurrency": w.concurrency,
	}).Info("Worker started")

	sem := make(chan struct{}, w.concurrency)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.logger.Info("Worker stopped")
			return ctx.Err()
		default:
		}

		result, err := w.client.BRPop(ctx, w.popTimeout, w.key).Result()
		if errors.Is(err, redis.Nil) {
			continue // timed out with an empty queue
		}
		if err != nil {
			if ctx.Err() != nil {
				w.wg.Wait()
				w.logger.Info("Worker stopped")
				return ctx.Err()
			}
			w.logger.WithError(err).Error("Failed to pop job")
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		if len(result) != 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			w.logger.WithError(err).Error("Failed to decode job, dropping")
			continue
		}

		sem <- struct{}{}
		w.wg.Add(1)
		go func(job Job) {
			defer func() {
				<-sem
				w.wg.Done()
			}()
			w.dispatch(ctx, &job)
		}(job)
	}
}

func (w *Worker) dispatch(ctx context.Context, job *Job) {
	log := w.logger.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"job_type": job.Type,
	})

	handler, ok := w.handlers[job.Type]
	if !ok {
		log.Warn("No handler registered for job type, dropping")
		return
	}

	start := time.Now()
	if err := handler(ctx, job); err != nil {
		log.WithError(err).Error("Job failed")
		return
	}
	log.WithField("duration", time.Since(start).String()).Info("Job completed")
}
