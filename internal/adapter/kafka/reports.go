// Package kafka consumes approved community reports from a Kafka topic and
// pushes them into the live feed.
package kafka

import (
	"context"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/begbajrami/begdar/internal/config"
	"github.com/begbajrami/begdar/internal/feed"
	"github.com/begbajrami/begdar/internal/observability"
	"github.com/begbajrami/begdar/internal/report"
)

// messageFetcher is the subset of kafkago.Reader the consumer uses.
type messageFetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ReportConsumer reads approved community reports from Kafka and pushes each
// one into the feed engine. Malformed messages are logged, counted, and
// committed so they are not redelivered.
type ReportConsumer struct {
	reader  messageFetcher
	engine  *feed.Engine
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReportConsumer creates a consumer for the configured reports topic.
func NewReportConsumer(cfg *config.Config, engine *feed.Engine, logger *slog.Logger, metrics *observability.Metrics) *ReportConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaReportsTopic,
	})
	return &ReportConsumer{reader: r, engine: engine, logger: logger, metrics: metrics}
}

// Run consumes messages until the context is cancelled.
func (c *ReportConsumer) Run(ctx context.Context) error {
	c.logger.Info("report consumer started")

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("report consumer stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !c.consumeOne(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// consumeOne fetches, decodes, pushes, and commits a single message.
// Returns false if the consumer should stop.
func (c *ReportConsumer) consumeOne(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.logger.Error("fetch report message failed", "error", err)
		return c.backoffOrStop(ctx, backoff, maxBackoff)
	}
	*backoff = 200 * time.Millisecond

	event, err := report.DecodeMessage(msg.Value)
	if err != nil {
		c.logger.Warn("skipping malformed report message",
			"error", err,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
		c.metrics.ReportDecodeErrors.Inc()
		c.commit(ctx, msg)
		return true
	}

	c.engine.Push(event)
	c.commit(ctx, msg)
	return true
}

func (c *ReportConsumer) commit(ctx context.Context, msg kafkago.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Warn("commit report offset failed", "error", err,
			"partition", msg.Partition, "offset", msg.Offset)
	}
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the consumer should stop.
func (c *ReportConsumer) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func (c *ReportConsumer) Close() error {
	return c.reader.Close()
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
