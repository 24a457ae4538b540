package recording

import (
	"context"
	"time"
)

// IngestedBatch is the record handed to downstream sinks after a batch has
// been stored.
type IngestedBatch struct {
	SessionID  string    `json:"sessionId"`
	BatchID    string    `json:"batchId,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
	StartedAt  time.Time `json:"startedAt"`
	Completed  bool      `json:"completed"`
	Metadata   Metadata  `json:"metadata"`
	Events     []Event   `json:"events"`
}

type Publisher interface {
	Publish(ctx context.Context, batch IngestedBatch) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, IngestedBatch) error { return nil }

func NopPublisher() Publisher {
	return nopPublisher{}
}
