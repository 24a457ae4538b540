package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/telemetry"
)

type Sink struct {
	Name      string
	Publisher recording.Publisher
}

// Fanout forwards each batch to every sink in order. One sink failing does not
// stop the others.
type Fanout struct {
	sinks   []Sink
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

func NewFanout(metrics *telemetry.Metrics, logger *slog.Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, metrics: metrics, logger: logger}
}

func (f *Fanout) Len() int {
	return len(f.sinks)
}

func (f *Fanout) Publish(ctx context.Context, batch recording.IngestedBatch) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publisher.Publish(ctx, batch); err != nil {
			f.metrics.PublishFailed(s.Name)
			f.logger.Warn("sink publish failed", "sink", s.Name, "session_id", batch.SessionID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}
