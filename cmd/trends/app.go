package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/region-sentiment/internal/adapter/file"
	"github.com/couchcryptid/region-sentiment/internal/adapter/kafka"
	"github.com/couchcryptid/region-sentiment/internal/adapter/postgres"
	"github.com/couchcryptid/region-sentiment/internal/config"
	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/couchcryptid/region-sentiment/internal/observability"
	"github.com/couchcryptid/region-sentiment/internal/pipeline"
	"github.com/spf13/cobra"
)

// newMetrics is swapped in tests, where the default registry would panic on
// repeated registration.
var newMetrics = observability.NewMetrics

// app carries what every subcommand needs once configuration has loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	closers []func() error
}

// newRootCmd returns the command tree together with the app its commands
// share. Run it through execute so resources are released on every path.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "trends",
		Short:         "Map the sentiment of geotagged records across regions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			a.metrics = newMetrics()
			return nil
		},
	}

	root.AddCommand(
		newSentimentCmd(a),
		newNearestCmd(a),
		newMapCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newLexiconCmd(a),
	)
	return root, a
}

// execute runs the command tree and then closes whatever the command opened.
// cobra skips post-run hooks when RunE fails, so closing happens here.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// loadLexicon reads the lexicon from Postgres when a DSN is configured and
// from the CSV file otherwise.
func (a *app) loadLexicon(ctx context.Context) (domain.MapLexicon, error) {
	if a.cfg.LexiconDSN == "" {
		lex, err := file.LoadLexicon(a.cfg.LexiconPath)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("lexicon loaded", "source", a.cfg.LexiconPath, "words", len(lex))
		return lex, nil
	}

	store, err := a.lexiconStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx)
}

func (a *app) lexiconStore(ctx context.Context) (*postgres.LexiconStore, error) {
	pool, err := postgres.Open(ctx, a.cfg.LexiconDSN)
	if err != nil {
		return nil, err
	}
	a.onClose(func() error { pool.Close(); return nil })
	return postgres.NewLexiconStore(pool, a.logger), nil
}

func (a *app) analyzer(ctx context.Context) (*domain.Analyzer, error) {
	lex, err := a.loadLexicon(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewAnalyzer(lex, nil), nil
}

func (a *app) loadCenters(ctx context.Context) (domain.CenterMap, error) {
	g, err := file.LoadGeography(a.cfg.RegionsPath, a.cfg.RegionNameProperty)
	if err != nil {
		return nil, err
	}
	centers, err := pipeline.ComputeCenters(ctx, g, a.cfg.CenterWorkers)
	if err != nil {
		return nil, fmt.Errorf("compute region centers: %w", err)
	}
	a.metrics.RegionsLoaded.Set(float64(len(centers)))
	a.logger.Debug("region centers computed", "regions", len(centers))
	return centers, nil
}

// service wires the full query stack: centers, lexicon, record source, optional
// Kafka publisher and the report cache.
func (a *app) service(ctx context.Context, publish bool) (*pipeline.Service, error) {
	centers, err := a.loadCenters(ctx)
	if err != nil {
		return nil, err
	}
	analyzer, err := a.analyzer(ctx)
	if err != nil {
		return nil, err
	}

	var publisher pipeline.Publisher
	if publish {
		p := kafka.NewPublisher(a.cfg, a.logger)
		a.onClose(p.Close)
		publisher = p
		a.logger.Info("kafka publishing enabled", "topic", a.cfg.KafkaSinkTopic, "brokers", a.cfg.KafkaBrokers)
	}

	source := file.NewRecordSource(a.cfg.RecordsPath)
	p := pipeline.New(source, analyzer, centers, publisher, a.logger, a.metrics, a.cfg.PublishMaxRetries)
	runner := pipeline.NewCachedRunner(p, a.cfg.ReportCacheSize, a.metrics)
	return pipeline.NewService(centers, analyzer, runner), nil
}
