package delivery

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Beacon queues a payload for delivery without waiting for the response.
// It reports whether the payload was accepted for sending.
type Beacon interface {
	Send(url, contentType string, body []byte) bool
}

const (
	defaultBeaconTimeout  = 5 * time.Second
	defaultBeaconInFlight = 4
	maxBeaconBytes        = 64 << 10
)

// HTTPBeacon posts payloads from background goroutines. It refuses payloads
// above 64KiB or when too many sends are already in flight, like a browser beacon.
type HTTPBeacon struct {
	httpClient *http.Client
	slots      chan struct{}
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewHTTPBeacon(logger *slog.Logger) *HTTPBeacon {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPBeacon{
		httpClient: &http.Client{Timeout: defaultBeaconTimeout},
		slots:      make(chan struct{}, defaultBeaconInFlight),
		logger:     logger,
	}
}

func (b *HTTPBeacon) Send(url, contentType string, body []byte) bool {
	if len(body) > maxBeaconBytes {
		return false
	}
	select {
	case b.slots <- struct{}{}:
	default:
		return false
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() { <-b.slots }()

		resp, err := b.httpClient.Post(url, contentType, bytes.NewReader(body))
		if err != nil {
			b.logger.Warn("beacon delivery failed", "error", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			b.logger.Warn("beacon rejected", "status", resp.StatusCode)
		}
	}()
	return true
}

// Wait blocks until every queued beacon has finished.
func (b *HTTPBeacon) Wait() {
	b.wg.Wait()
}
