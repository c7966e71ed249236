package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewDefaultKafkaPublisher(brokers []string, topic string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(context.Background(), km...)
}

// PublishRental keys messages by rental id so redeliveries and status
// updates for one rental land on the same partition, in order.
func (k *DefaultKafkaPublisher) PublishRental(event RentalEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(k.topic, domain.Message{Key: []byte(event.RentalID), Value: v})
}

// BatchPublishRentals publishes a batch in one write, skipping events that
// fail to marshal rather than dropping the whole batch.
func (k *DefaultKafkaPublisher) BatchPublishRentals(events []RentalEvent) error {
	if len(events) == 0 {
		return nil
	}

	if len(events) == 1 {
		return k.PublishRental(events[0])
	}

	messages := make([]kafka.Message, 0, len(events))
	timestamp := time.Now()

	for _, event := range events {
		msg, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal event for rental %s: %v", event.RentalID, err)
			continue
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(event.RentalID),
			Value: msg,
			Time:  timestamp,
			Topic: k.topic,
		})
	}

	if len(messages) == 0 {
		return fmt.Errorf("no valid messages to publish")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to write batch messages: %w", err)
	}

	return nil
}

// BatchPublishRentalsWithRetry splits large batches and retries each chunk
// with a linear backoff before giving up on it.
func (k *DefaultKafkaPublisher) BatchPublishRentalsWithRetry(events []RentalEvent, batchSize int, maxRetries int) error {
	if len(events) == 0 {
		return nil
	}

	if batchSize <= 0 {
		batchSize = 100
	}

	var allErrors []error
	successfulCount := 0

	for i := 0; i < len(events); i += batchSize {
		end := i + batchSize
		if end > len(events) {
			end = len(events)
		}

		batch := events[i:end]

		var err error
		for attempt := 1; attempt <= maxRetries; attempt++ {
			err = k.BatchPublishRentals(batch)
			if err == nil {
				successfulCount += len(batch)
				break
			}

			log.Printf("Batch publish attempt %d failed: %v", attempt, err)

			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * time.Second)
			}
		}

		if err != nil {
			allErrors = append(allErrors, fmt.Errorf("batch %d-%d failed after %d attempts: %w",
				i, end, maxRetries, err))
		}
	}

	if successfulCount == 0 && len(allErrors) > 0 {
		return fmt.Errorf("all batches failed: %v", allErrors)
	}

	return nil
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
