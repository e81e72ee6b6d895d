package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/cache"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/config"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/telemetry"
)

// Sink receives every newly seen posting for long-term storage.
type Sink interface {
	StorePosting(ctx context.Context, job models.Job) error
}

// Watcher polls the configured saved search on an interval, publishes
// postings it has not seen before, and hands them to the sink. Seen ids
// live in the cache so restarts do not replay old postings.
type Watcher struct {
	jobs      *services.JobService
	publisher Publisher
	sink      Sink
	cache     cache.Cache
	logger    *zap.Logger
	config    *config.Config

	mutex    sync.Mutex
	isActive bool
}

func NewWatcher(jobs *services.JobService, publisher Publisher, sink Sink, c cache.Cache, logger *zap.Logger, cfg *config.Config) *Watcher {
	return &Watcher{
		jobs:      jobs,
		publisher: publisher,
		sink:      sink,
		cache:     c,
		logger:    logger,
		config:    cfg,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Watcher.Start")
	defer span.End()

	w.mutex.Lock()
	if w.isActive {
		w.mutex.Unlock()
		return nil
	}
	w.isActive = true
	w.mutex.Unlock()

	ticker := time.NewTicker(w.config.WatchInterval)
	defer ticker.Stop()

	if err := w.sweep(ctx); err != nil {
		w.logger.Error("initial sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error("periodic sweep failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.isActive = false
}

// sweep fetches the first page of the saved search and processes postings
// not yet in the seen cache.
func (w *Watcher) sweep(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Watcher.sweep")
	defer span.End()

	filters := models.JobSearchFilters{
		Query:    w.config.WatchQuery,
		Location: w.config.WatchLocation,
	}

	page, err := w.jobs.SearchJobs(ctx, filters, 0, w.config.WatchPageSize)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("fetching watched search", err)
	}
	span.SetAttributes(telemetry.Int("postings.count", len(page.Content)))

	newCount := 0
	for _, job := range page.Content {
		seen, err := w.alreadySeen(ctx, job.ID)
		if err != nil {
			w.logger.Warn("seen-cache lookup failed",
				zap.Int64("job_id", job.ID),
				zap.Error(err))
		}
		if seen {
			continue
		}

		if err := w.processPosting(ctx, job); err != nil {
			w.logger.Error("failed to process posting",
				zap.Int64("job_id", job.ID),
				zap.Error(err))
			continue
		}
		newCount++
	}

	span.SetAttributes(telemetry.Int("postings.new", newCount))
	w.logger.Info("completed watch sweep",
		zap.Int("fetched", len(page.Content)),
		zap.Int("new", newCount))
	return nil
}

func (w *Watcher) alreadySeen(ctx context.Context, jobID int64) (bool, error) {
	var marker string
	err := w.cache.Get(ctx, seenKey(jobID), &marker)
	if err == nil {
		return true, nil
	}
	if err == cache.ErrNotFound {
		return false, nil
	}
	return false, err
}

func (w *Watcher) processPosting(ctx context.Context, job models.Job) error {
	if err := w.publisher.PublishJobSeen(ctx, job); err != nil {
		return err
	}

	if w.sink != nil {
		if err := w.sink.StorePosting(ctx, job); err != nil {
			return err
		}
	}

	if err := w.cache.Set(ctx, seenKey(job.ID), "1", w.config.CacheTTL); err != nil {
		w.logger.Warn("failed to mark posting as seen",
			zap.Int64("job_id", job.ID),
			zap.Error(err))
	}

	w.logger.Debug("new posting seen",
		zap.Int64("job_id", job.ID),
		zap.String("title", job.Title),
		zap.String("company", job.Company.Name))
	return nil
}

func seenKey(jobID int64) string {
	return fmt.Sprintf("nexus:seen:job:%d", jobID)
}
