package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// VoteEvent is published after every successfully committed vote. Consumers
// get an audit stream of vote activity; nothing in the serving path reads it
// back.
type VoteEvent struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	VoterID  string `json:"voter_id"`
	Updated  bool   `json:"updated"`
}

// Producer writes vote events to Kafka. A Producer built without brokers is
// a no-op, so callers never need to branch on whether events are enabled.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return &Producer{}
	}
	return &Producer{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   topic,
		}),
	}
}

// PublishVote sends the event, keyed by voter so one voter's events stay
// ordered within a partition. Publish failures are logged, not surfaced: the
// vote itself is already durable.
func (p *Producer) PublishVote(ctx context.Context, event VoteEvent) {
	if p == nil || p.writer == nil {
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to encode vote event", "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VoterID),
		Value: value,
	})
	if err != nil {
		slog.Warn("failed to publish vote event", "error", err, "poll_id", event.PollID)
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
