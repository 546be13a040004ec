package names

import (
	"context"

	"github.com/segmentio/kafka-go"
)

const (
	PurchaseTopic = "names_purchase"
	EscrowTopic   = "names_escrow"
	SuffixTopic   = "names_suffix"
)

// EventWriter publishes keyed events to one topic.
type EventWriter interface {
	Write(key string, body []byte) error
	Close()
}

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	return &KWriter{w: w}, nil
}

// Write keys messages so events of one account stay ordered within a partition.
func (kw *KWriter) Write(key string, body []byte) error {
	return kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(key),
			Value: body,
		},
	)
}

func (kw *KWriter) Close() {
	if err := kw.w.Close(); err != nil {
		log.Error("kw.w.Close()", "topic", kw.w.Topic, "err", err)
	}
}

func NewKWriters(uri string) (map[string]EventWriter, error) {
	writers := make(map[string]EventWriter)
	for _, topic := range []string{PurchaseTopic, EscrowTopic, SuffixTopic} {
		w, err := NewKWriter(topic, uri)
		if err != nil {
			return nil, err
		}
		writers[topic] = w
	}
	return writers, nil
}
