package events

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes one message per event to the topic named after
// the event type, keyed by the aggregate key so consumers see events for
// a given professional in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Balancer: &kafka.Hash{},
		}),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic: ev.Type,
		Key:   []byte(ev.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID.String())},
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("event_type", ev.Type).Msg("kafka publish failed")
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
