package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/region-sentiment/internal/config"
	"github.com/couchcryptid/region-sentiment/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per reported region to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes every region row of the report in a single WriteMessages
// call. Rows are keyed by region so a region's history stays on one partition.
func (p *Publisher) Publish(ctx context.Context, report domain.Report) error {
	if len(report.Regions) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(report.Regions))
	for i := range report.Regions {
		msg, err := serializeToMessage(report, report.Regions[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write report %s: %w", report.ID, err)
	}
	p.logger.Debug("report published", "report_id", report.ID, "term", report.Term, "regions", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals one region row into a Kafka message carrying the
// report identity in its headers.
func serializeToMessage(report domain.Report, row domain.RegionRow) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize region row %s: %w", row.Region, err)
	}
	return kafkago.Message{
		Key:   []byte(row.Region),
		Value: data,
		Time:  report.GeneratedAt,
		Headers: []kafkago.Header{
			{Key: "report_id", Value: []byte(report.ID)},
			{Key: "term", Value: []byte(report.Term)},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
