// Package queue carries playlist export requests from the API to the
// consumer process over a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"openmusic/logger"
	"openmusic/model"

	"github.com/go-redis/redis/v8"
)

// DefaultPopTimeout bounds each blocking pop so cancellation is noticed.
const DefaultPopTimeout = 5 * time.Second

// Handler processes one export request.
type Handler func(ctx context.Context, req model.ExportRequest) error

// ExportQueue is a FIFO of export requests: LPUSH to publish, BRPOP to consume.
type ExportQueue struct {
	client     *redis.Client
	key        string
	popTimeout time.Duration
}

// NewExportQueue creates a queue on the given list key.
func NewExportQueue(client *redis.Client, key string) *ExportQueue {
	return &ExportQueue{client: client, key: key, popTimeout: DefaultPopTimeout}
}

// Publish enqueues req.
func (q *ExportQueue) Publish(ctx context.Context, req model.ExportRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal export request: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, body).Err(); err != nil {
		return fmt.Errorf("failed to publish export request: %w", err)
	}
	return nil
}

// Consume pops requests and hands them to handle until ctx is cancelled.
// A failing message is logged and dropped.
func (q *ExportQueue) Consume(ctx context.Context, handle Handler) error {
	logger.Info("Export consumer started", logger.String("queue", q.key))
	for {
		if ctx.Err() != nil {
			return nil
		}

		result, err := q.client.BRPop(ctx, q.popTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to pop export request: %w", err)
		}

		// result[0] is the key, result[1] the payload.
		q.dispatch(ctx, []byte(result[1]), handle)
	}
}

func (q *ExportQueue) dispatch(ctx context.Context, body []byte, handle Handler) {
	req, err := DecodeRequest(body)
	if err != nil {
		logger.Error("Dropping malformed export request", logger.ErrorField(err))
		return
	}

	start := time.Now()
	if err := handle(ctx, req); err != nil {
		logger.Error("Export failed",
			logger.String("playlistId", req.PlaylistID),
			logger.ErrorField(err),
		)
		return
	}
	logger.Info("Export delivered",
		logger.String("playlistId", req.PlaylistID),
		logger.Duration("took", time.Since(start)),
	)
}

// DecodeRequest parses a queued message.
func DecodeRequest(body []byte) (model.ExportRequest, error) {
	var req model.ExportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("failed to decode export request: %w", err)
	}
	if req.PlaylistID == "" || req.TargetEmail == "" {
		return req, fmt.Errorf("export request is missing playlistId or targetEmail")
	}
	return req, nil
}
