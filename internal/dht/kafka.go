package dht

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the slice of *kgo.Client the Kafka publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Kafka hands items to a DHT bridge through a topic. The record key is the
// raw target so the bridge can partition and dedupe on it. Reads go through
// the bridge's own gateway, so Get is unsupported here.
type Kafka struct {
	producer Producer
	topic    string
}

// NewKafka constructs a write-only publisher producing to topic.
func NewKafka(producer Producer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

// Put produces the value and waits for the broker acknowledgement.
func (k *Kafka) Put(ctx context.Context, value []byte) (CommitHash, error) {
	if err := checkValue(value); err != nil {
		return "", err
	}
	target := Target(value)
	rec := &kgo.Record{
		Topic: k.topic,
		Key:   target.Bytes(),
		Value: value,
	}
	if err := k.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return "", fmt.Errorf("kafka produce to %s: %w", k.topic, err)
	}
	return target, nil
}

func (k *Kafka) Get(context.Context, []byte) ([]byte, error) {
	return nil, ErrReadUnsupported
}
