package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/dial112-incident-feed/internal/config"
	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces one message per canonical incident to a Kafka topic.
// It implements feed.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured incident topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes every incident in snap in a single WriteMessages call.
// Messages are keyed by ticket id so revisions of one call land on the same
// partition.
func (p *Publisher) Publish(ctx context.Context, snap *domain.Snapshot) error {
	if len(snap.Incidents) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Incidents))
	for i := range snap.Incidents {
		msg, err := serializeToMessage(snap.Incidents[i], snap.FetchedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d incidents to %s: %w", len(msgs), p.writer.Topic, err)
	}
	p.logger.Debug("published incidents", "count", len(msgs), "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an Incident into a Kafka message.
func serializeToMessage(inc domain.Incident, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(inc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize incident %d: %w", inc.ID, err)
	}
	return kafkago.Message{
		Key:   messageKey(inc),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "crime_type", Value: []byte(inc.CrimeType)},
			{Key: "district", Value: []byte(inc.District)},
			{Key: "fetched_at", Value: []byte(fetchedAt.Format(time.RFC3339))},
		},
	}, nil
}

func messageKey(inc domain.Incident) []byte {
	if inc.TicketID != "" {
		return []byte(inc.TicketID)
	}
	return []byte(strconv.FormatInt(inc.ID, 10))
}
