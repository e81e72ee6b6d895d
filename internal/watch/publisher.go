package watch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/config"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/telemetry"
)

var tracer = telemetry.GetTracer("nexus/client/watch")

const JobsSeenSubject = "nexus.jobs.seen"

// Publisher announces newly seen postings to downstream tooling.
type Publisher interface {
	PublishJobSeen(ctx context.Context, job models.Job) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishJobSeen(ctx context.Context, job models.Job) error {
	_, span := tracer.Start(ctx, "PublishJobSeen")
	defer span.End()

	data, err := json.Marshal(job)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job posting", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", JobsSeenSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(JobsSeenSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job posting",
			zap.Int64("id", job.ID),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published job posting",
		zap.Int64("id", job.ID),
		zap.String("subject", JobsSeenSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
