package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func num(v float64) *float64 { return &v }

func testBatch() recording.IngestedBatch {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return recording.IngestedBatch{
		SessionID:  "s1",
		BatchID:    "b1",
		ReceivedAt: started.Add(5 * time.Second),
		StartedAt:  started,
		Metadata:   recording.Metadata{URL: "https://shop.example.com/"},
		Events: []recording.Event{
			{Type: recording.EventClick, Timestamp: 1200, X: num(40), Y: num(80), Target: "button#buy"},
			{Type: recording.EventNavigation, Timestamp: 2500, URL: "/cart"},
		},
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got recording.IngestedBatch
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.SessionID != "s1" || len(got.Events) != 2 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewKafkaPublisher(producer, "session-batches", testLogger())
	require.NoError(t, p.Publish(context.Background(), testBatch()))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisher(producer, "session-batches", testLogger())
	err := p.Publish(context.Background(), testBatch())
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := NewKafkaPublisher(producer, "session-batches", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, testBatch()), context.Canceled)
	require.NoError(t, p.Close())
}

func TestArchiveRows(t *testing.T) {
	batch := testBatch()

	rows, err := ArchiveRows(batch)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	click := rows[0]
	assert.Equal(t, "s1", click.SessionID)
	assert.Equal(t, "b1", click.BatchID)
	assert.Equal(t, "click", click.EventType)
	assert.Equal(t, batch.StartedAt.Add(1200*time.Millisecond), click.EventTime)
	assert.Equal(t, int64(1200), click.OffsetMs)
	assert.Equal(t, "https://shop.example.com/", click.PageURL)
	assert.Equal(t, 40.0, *click.X)
	assert.Nil(t, click.ScrollY)
	assert.Contains(t, click.Payload, `"target":"button#buy"`)

	assert.Equal(t, "/cart", rows[1].PageURL)
}

func TestArchiveRows_Empty(t *testing.T) {
	rows, err := ArchiveRows(recording.IngestedBatch{SessionID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

type recordingSink struct {
	batches []recording.IngestedBatch
	err     error
}

func (r *recordingSink) Publish(_ context.Context, b recording.IngestedBatch) error {
	r.batches = append(r.batches, b)
	return r.err
}

func TestFanout_PublishesToEverySink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	f := NewFanout(nil, testLogger(), Sink{Name: "first", Publisher: first}, Sink{Name: "second", Publisher: second})

	require.NoError(t, f.Publish(context.Background(), testBatch()))
	assert.Len(t, first.batches, 1)
	assert.Len(t, second.batches, 1)
	assert.Equal(t, 2, f.Len())
}

func TestFanout_FailureDoesNotStopOtherSinks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	broken := &recordingSink{err: errors.New("broker unavailable")}
	healthy := &recordingSink{}
	f := NewFanout(metrics, testLogger(), Sink{Name: "kafka", Publisher: broken}, Sink{Name: "clickhouse", Publisher: healthy})

	err := f.Publish(context.Background(), testBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker unavailable")
	assert.Len(t, healthy.batches, 1)

	expected := `
# HELP insight_publish_failures_total Batches that could not be forwarded to a downstream sink.
# TYPE insight_publish_failures_total counter
insight_publish_failures_total{sink="kafka"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "insight_publish_failures_total"))
}

func TestFanout_Empty(t *testing.T) {
	f := NewFanout(nil, testLogger())
	assert.NoError(t, f.Publish(context.Background(), testBatch()))
}
