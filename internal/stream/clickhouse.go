package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/eleven-am/insight-backend/internal/recording"
)

type ClickHouseConfig struct {
	Addr     []string
	Database string
	Username string
	Password string
}

func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (clickhouse.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: cfg.Addr,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS session_events (
		session_id   String,
		batch_id     String,
		received_at  DateTime64(3),
		event_time   DateTime64(3),
		offset_ms    Int64,
		event_type   LowCardinality(String),
		page_url     String,
		target       String,
		x            Nullable(Float64),
		y            Nullable(Float64),
		scroll_y     Nullable(Float64),
		payload      String
	) ENGINE = MergeTree
	ORDER BY (session_id, event_time)
`

const insertEvents = `
	INSERT INTO session_events (
		session_id, batch_id, received_at, event_time, offset_ms, event_type,
		page_url, target, x, y, scroll_y, payload
	)
`

// ArchiveRow is one event flattened for the columnar archive.
type ArchiveRow struct {
	SessionID  string
	BatchID    string
	ReceivedAt time.Time
	EventTime  time.Time
	OffsetMs   int64
	EventType  string
	PageURL    string
	Target     string
	X          *float64
	Y          *float64
	ScrollY    *float64
	Payload    string
}

func ArchiveRows(batch recording.IngestedBatch) ([]ArchiveRow, error) {
	rows := make([]ArchiveRow, 0, len(batch.Events))
	for _, e := range batch.Events {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event: %w", err)
		}
		page := e.URL
		if page == "" {
			page = batch.Metadata.URL
		}
		rows = append(rows, ArchiveRow{
			SessionID:  batch.SessionID,
			BatchID:    batch.BatchID,
			ReceivedAt: batch.ReceivedAt,
			EventTime:  batch.StartedAt.Add(time.Duration(e.Timestamp) * time.Millisecond),
			OffsetMs:   e.Timestamp,
			EventType:  string(e.Type),
			PageURL:    page,
			Target:     e.Target,
			X:          e.X,
			Y:          e.Y,
			ScrollY:    e.ScrollY,
			Payload:    string(payload),
		})
	}
	return rows, nil
}

// ClickHouseSink appends every event of a stored batch to an append-only table.
type ClickHouseSink struct {
	conn   clickhouse.Conn
	logger *slog.Logger
}

func NewClickHouseSink(conn clickhouse.Conn, logger *slog.Logger) *ClickHouseSink {
	return &ClickHouseSink{conn: conn, logger: logger.With("sink", "clickhouse")}
}

func (s *ClickHouseSink) Migrate(ctx context.Context) error {
	return s.conn.Exec(ctx, createEventsTable)
}

func (s *ClickHouseSink) Publish(ctx context.Context, batch recording.IngestedBatch) error {
	rows, err := ArchiveRows(batch)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	b, err := s.conn.PrepareBatch(ctx, insertEvents)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, r := range rows {
		if err := b.Append(
			r.SessionID,
			r.BatchID,
			r.ReceivedAt,
			r.EventTime,
			r.OffsetMs,
			r.EventType,
			r.PageURL,
			r.Target,
			r.X,
			r.Y,
			r.ScrollY,
			r.Payload,
		); err != nil {
			_ = b.Abort()
			return fmt.Errorf("failed to append event: %w", err)
		}
	}

	if err := b.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.logger.Debug("events archived", "session_id", batch.SessionID, "rows", len(rows))
	return nil
}

func (s *ClickHouseSink) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func (s *ClickHouseSink) Close() error {
	return s.conn.Close()
}
