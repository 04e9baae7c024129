package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic топик событий резерваций
const DefaultTopic = "reservations.events"

var (
	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events: failed to publish event")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// KafkaPublisher отправляет события в Kafka, ключ сообщения - ID резервации
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	log    Logger
}

// NewKafkaPublisher создает издателя для списка брокеров
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, log Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
		log:   log,
	}
}

// Publish отправляет событие синхронно
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: type=%s, reservation=%d: %v", ErrPublish, event.Type, event.ReservationID, err)
	}

	p.log.Info("Event published: type=%s, reservation_id=%d, topic=%s", event.Type, event.ReservationID, p.topic)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(event Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ReservationID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}, nil
}

// NopPublisher используется, когда брокеры не настроены
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

// SplitBrokers разбирает список брокеров "host1:9092,host2:9092"
func SplitBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
