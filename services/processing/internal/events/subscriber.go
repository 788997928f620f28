package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"jobtagger/services/processing/internal/config"
)

// MessageProcessor handles the payload of one raw job message.
type MessageProcessor interface {
	ProcessJobPosting(ctx context.Context, rawData []byte) error
}

type Handler struct {
	logger    *zap.Logger
	nc        *nats.Conn
	tracer    trace.Tracer
	processor MessageProcessor
	subject   string
	queue     string
	timeout   time.Duration
	sub       *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, processor MessageProcessor, cfg *config.Config) *Handler {
	return &Handler{
		logger:    logger,
		nc:        nc,
		tracer:    tracer,
		processor: processor,
		subject:   cfg.RawSubject,
		queue:     cfg.QueueGroup,
		timeout:   cfg.ProcessingTimeout,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(h.subject, h.queue, h.handleJobPosting)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.subject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions",
		zap.String("subject", h.subject),
		zap.String("queue", h.queue),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Drain()
		},
	})

	return nil
}

func (h *Handler) handleJobPosting(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "handleJobPosting")
	defer span.End()

	if err := h.processor.ProcessJobPosting(ctx, msg.Data); err != nil {
		h.logger.Error("Failed to process job posting",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	h.logger.Debug("Processed job posting",
		zap.String("subject", msg.Subject),
	)
}
