package kafka

import (
	"context"
	"strconv"

	"app/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

// Publisher はoutboxイベントをKafkaへ流す。
// keyは注文idなので同じ注文のイベントは同じパーティションに並ぶ。
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(topic string, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, ev model.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.AggregateID, 10)),
		Value: []byte(ev.Payload),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
			{Key: "event_id", Value: []byte(ev.ID)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
