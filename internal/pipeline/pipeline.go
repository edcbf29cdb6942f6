package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/couchcryptid/region-sentiment/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// RecordSource returns the records whose text matches a query term.
type RecordSource interface {
	Records(ctx context.Context, term string) ([]domain.Record, error)
}

// Publisher delivers a finished report downstream.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Runner produces a report for a query term.
type Runner interface {
	Run(ctx context.Context, term string) (domain.Report, error)
}

// Pipeline runs one load-cluster-aggregate-publish pass per query term.
type Pipeline struct {
	source     RecordSource
	analyzer   *domain.Analyzer
	centers    domain.CenterMap
	publisher  Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	maxRetries int
}

// New creates a Pipeline. A nil publisher disables publishing.
func New(source RecordSource, analyzer *domain.Analyzer, centers domain.CenterMap, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, maxRetries int) *Pipeline {
	return &Pipeline{
		source:     source,
		analyzer:   analyzer,
		centers:    centers,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
		maxRetries: maxRetries,
	}
}

// Run analyses the records matching term. When publishing fails after every
// retry the report is still returned together with the error.
func (p *Pipeline) Run(ctx context.Context, term string) (domain.Report, error) {
	start := time.Now()

	records, err := p.source.Records(ctx, term)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return domain.Report{}, fmt.Errorf("load records: %w", err)
	}

	assignment := domain.Cluster(records, p.centers)
	report := domain.NewReport(term, records, assignment, p.centers, p.analyzer)

	p.metrics.RecordsClustered.Add(float64(assignment.Count()))
	p.metrics.RecordsUnknownSentiment.Add(float64(report.UnknownRecords()))
	p.metrics.RegionsReported.Observe(float64(len(report.Regions)))

	if p.publisher != nil {
		if err := p.publish(ctx, report); err != nil {
			p.metrics.RunsTotal.WithLabelValues("publish_error").Inc()
			p.logger.Error("publish report failed", "term", term, "report_id", report.ID, "error", err)
			return report, fmt.Errorf("publish report: %w", err)
		}
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("run complete",
		"term", term,
		"records", len(records),
		"regions", len(report.Regions),
		"unknown", report.UnknownRecords(),
	)
	return report, nil
}

// publish tries once plus maxRetries times, backing off between attempts.
func (p *Pipeline) publish(ctx context.Context, report domain.Report) error {
	backoff := initialBackoff
	var err error
	for attempt := 0; ; attempt++ {
		if err = p.publisher.Publish(ctx, report); err == nil {
			return nil
		}
		p.metrics.PublishErrors.Inc()
		if attempt >= p.maxRetries || ctx.Err() != nil {
			return err
		}
		p.logger.Warn("publish failed, retrying", "attempt", attempt+1, "backoff", backoff, "error", err)
		if !sleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
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
