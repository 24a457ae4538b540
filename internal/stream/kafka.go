package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/eleven-am/insight-backend/internal/recording"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Retries int
	Timeout time.Duration
}

// NewSyncProducer builds a producer that waits for all in-sync replicas and
// partitions by session id, so one session's batches stay ordered.
func NewSyncProducer(cfg KafkaConfig) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = cfg.Retries
	config.Producer.Timeout = cfg.Timeout
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V3_3_0_0

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("sink", "kafka", "topic", topic),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, batch recording.IngestedBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(batch.SessionID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("received_at"), Value: []byte(batch.ReceivedAt.Format(time.RFC3339Nano))},
			{Key: []byte("completed"), Value: []byte(fmt.Sprint(batch.Completed))},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	p.logger.Debug("batch published",
		"session_id", batch.SessionID,
		"events", len(batch.Events),
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}
