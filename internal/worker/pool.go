package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
)

const QueueNotifications = "jobs:notifications"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool
// dequeues them via BRPOP. It satisfies the inventory service's
// Notifier: enqueueing never blocks on outbound delivery.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyTransfer pushes a transfer notification job to Redis.
func (d *Dispatcher) NotifyTransfer(ctx context.Context, t model.Transfer) {
	if err := d.enqueue(ctx, QueueNotifications, "transfer", t); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue transfer notification")
	}
}

// NotifySale pushes a sale notification job to Redis.
func (d *Dispatcher) NotifySale(ctx context.Context, s model.Sale) {
	if err := d.enqueue(ctx, QueueNotifications, "sale", s); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue sale notification")
	}
}

// EnqueueTest pushes a test-message job to Redis.
func (d *Dispatcher) EnqueueTest(ctx context.Context, recipient string) error {
	return d.enqueue(ctx, QueueNotifications, "test", testPayload{Recipient: recipient})
}

type testPayload struct {
	Recipient string `json:"recipient"`
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the
// notification queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, nw *NotifyWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, nw, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, nw *NotifyWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotifications).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, nw, result[1])
		}
	}
}

func processJob(ctx context.Context, nw *NotifyWorker, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	nw.Process(ctx, job)
}
