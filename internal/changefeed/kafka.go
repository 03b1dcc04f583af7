package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

const (
	minReadBackoff = 500 * time.Millisecond
	maxReadBackoff = 30 * time.Second
)

// KafkaSubscriber turns product events written by admin endpoints into change events.
// Read errors are logged and retried with exponential backoff until ctx ends.
type KafkaSubscriber struct {
	reader messageReader

	// zero means minReadBackoff
	backoff time.Duration
}

// NewKafkaSubscriber starts at the tail of topic. groupID must be unique per
// process so every replica sees every event.
func NewKafkaSubscriber(brokers []string, topic, groupID string) *KafkaSubscriber {
	return &KafkaSubscriber{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    1 << 20,
	})}
}

func (k *KafkaSubscriber) Name() string { return SourceKafka }

func (k *KafkaSubscriber) Run(ctx context.Context, out chan<- Event) error {
	l := logging.FromContext(ctx).With("source", SourceKafka)
	defer k.reader.Close()

	base := k.backoff
	if base <= 0 {
		base = minReadBackoff
	}
	wait := base

	for {
		msg, err := k.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			l.Warn("product_event_read_failed", "error", err, "retry_in", wait)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			wait = min(wait*2, maxReadBackoff)
			continue
		}
		wait = base

		ev, ok := parseProductEvent(msg.Value)
		if !ok {
			l.Warn("product_event_malformed", "offset", msg.Offset, "partition", msg.Partition)
			continue
		}
		emit(out, ev)
	}
}

func parseProductEvent(value []byte) (Event, bool) {
	var body struct {
		Type      string `json:"type"`
		ProductID string `json:"productID"`
	}
	if err := json.Unmarshal(value, &body); err != nil || body.Type == "" {
		return Event{}, false
	}
	return Event{Source: SourceKafka, Op: normalizeOp(body.Type), ProductID: body.ProductID}, true
}
