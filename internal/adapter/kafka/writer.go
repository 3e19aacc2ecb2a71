package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/emissions-dashboard/internal/config"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes rendered map frames to a Kafka topic.
// It implements dashboard.FrameSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured render topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaRenderTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes frames and writes them in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, frames []domain.MapFrame) error {
	if len(frames) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(frames))
	for i := range frames {
		msg, err := serializeToMessage(frames[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d frames to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.Debug("frames published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a MapFrame into a Kafka message keyed by frame ID.
func serializeToMessage(frame domain.MapFrame) (kafkago.Message, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize map frame: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(frame.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(frame.Kind)},
			{Key: "category", Value: []byte(frame.Category)},
			{Key: "generated_at", Value: []byte(frame.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
