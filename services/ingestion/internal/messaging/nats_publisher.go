package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/common/telemetry"
	"jobtagger/services/ingestion/internal/config"
)

var tracer = telemetry.GetTracer("jobtagger/ingestion/messaging")

type Publisher interface {
	PublishRecord(ctx context.Context, record models.Record) error
	Close()
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type natsPublisher struct {
	conn    conn
	subject string
	logger  *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Name("ingestion-service"),
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return newNATSPublisher(nc, config.RawSubject, logger), nil
}

func newNATSPublisher(c conn, subject string, logger *zap.Logger) *natsPublisher {
	return &natsPublisher{conn: c, subject: subject, logger: logger}
}

func (p *natsPublisher) PublishRecord(ctx context.Context, record models.Record) error {
	_, span := tracer.Start(ctx, "PublishRecord")
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job record", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", p.subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job record",
			zap.String("job_id", record.ID()),
			zap.Error(err))
		return errors.Unavailable("publishing to NATS", err)
	}

	p.logger.Debug("published job record",
		zap.String("job_id", record.ID()),
		zap.String("subject", p.subject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
