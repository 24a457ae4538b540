package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/stream"
	"github.com/eleven-am/insight-backend/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ProvideRedisClient(lc fx.Lifecycle, cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func ProvideDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func ProvideRegistry() *prometheus.Registry {
	return telemetry.NewRegistry()
}

func ProvideMetrics(reg *prometheus.Registry) *telemetry.Metrics {
	return telemetry.NewMetrics(reg)
}

// ProvideKafkaPublisher returns nil when no brokers are configured.
func ProvideKafkaPublisher(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (*stream.KafkaPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}

	producer, err := stream.NewSyncProducer(stream.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		Retries: 3,
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	publisher := stream.NewKafkaPublisher(producer, cfg.KafkaTopic, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

// ProvideClickHouseSink returns nil when no archive address is configured.
func ProvideClickHouseSink(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (*stream.ClickHouseSink, error) {
	if len(cfg.ClickHouseAddr) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := stream.OpenClickHouse(ctx, stream.ClickHouseConfig{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
	})
	if err != nil {
		return nil, err
	}

	sink := stream.NewClickHouseSink(conn, logger)
	if err := sink.Migrate(ctx); err != nil {
		_ = sink.Close()
		return nil, fmt.Errorf("failed to migrate event archive: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sink.Close()
		},
	})
	return sink, nil
}

func ProvidePublisher(
	kafka *stream.KafkaPublisher,
	archive *stream.ClickHouseSink,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) recording.Publisher {
	var sinks []stream.Sink
	if kafka != nil {
		sinks = append(sinks, stream.Sink{Name: "kafka", Publisher: kafka})
	}
	if archive != nil {
		sinks = append(sinks, stream.Sink{Name: "clickhouse", Publisher: archive})
	}

	if len(sinks) == 0 {
		logger.Info("no event sinks configured, ingested batches are only stored")
		return recording.NopPublisher()
	}
	fanout := stream.NewFanout(metrics, logger.With("component", "fanout"), sinks...)
	logger.Info("event sinks configured", "sinks", fanout.Len())
	return fanout
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideDatabase,
		ProvideRegistry,
		ProvideMetrics,
		ProvideKafkaPublisher,
		ProvideClickHouseSink,
		ProvidePublisher,
	),
)
