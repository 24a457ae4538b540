package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eleven-am/insight-backend/internal/dto"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "http://localhost:4000"
	DefaultTimeout = 10 * time.Second

	sessionsPath = "/sessions"
	contentType  = "application/json"
)

// ErrDelivery wraps every transport failure and non-2xx collector response.
var ErrDelivery = errors.New("delivery failed")

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Beacon carries completed batches. Nil means completed batches use a normal request.
	Beacon Beacon
	Now    func() time.Time
	Logger *slog.Logger
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	beacon     Beacon
	now        func() time.Time
	logger     *slog.Logger
	group      singleflight.Group

	mu           sync.Mutex
	sessionID    string
	startedAt    time.Time
	metadata     *dto.MetadataPayload
	metadataSent bool
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   base + sessionsPath,
		beacon:     cfg.Beacon,
		now:        cfg.Now,
		logger:     cfg.Logger,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Open binds the client to a session. Metadata will be sent again for the new session.
func (c *Client) Open(sessionID string, startedAt time.Time, metadata dto.MetadataPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
	c.startedAt = startedAt
	c.metadata = &metadata
	c.metadataSent = false
}

func (c *Client) MetadataSent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metadataSent
}

// EnsureMetadata posts the session metadata once. Concurrent callers share
// a single in-flight request; a failure is returned and retried on the next call.
func (c *Client) EnsureMetadata(ctx context.Context) error {
	c.mu.Lock()
	if c.metadataSent {
		c.mu.Unlock()
		return nil
	}
	if c.sessionID == "" {
		c.mu.Unlock()
		return fmt.Errorf("%w: session not opened", ErrDelivery)
	}
	payload := dto.BatchPayload{
		SessionID: c.sessionID,
		StartedAt: c.formatStart(),
		Metadata:  c.metadata,
		Events:    []dto.EventPayload{},
	}
	key := c.sessionID
	c.mu.Unlock()

	_, err, _ := c.group.Do(key, func() (any, error) {
		if c.MetadataSent() {
			return nil, nil
		}
		if err := c.post(ctx, payload); err != nil {
			c.logger.Warn("session metadata delivery failed", "error", err, "session_id", key)
			return nil, err
		}
		c.markMetadataSent(key)
		c.logger.Debug("session metadata delivered", "session_id", key)
		return nil, nil
	})
	return err
}

func (c *Client) markMetadataSent(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID == sessionID {
		c.metadataSent = true
	}
}

// Send delivers one drained batch. Normal batches wait for the metadata
// handshake first. Completed batches carry pending metadata inline and go
// through the beacon when one is configured, falling back to a normal request.
func (c *Client) Send(ctx context.Context, events []dto.EventPayload, completed bool) error {
	if !completed {
		if err := c.EnsureMetadata(ctx); err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
	}

	c.mu.Lock()
	if c.sessionID == "" {
		c.mu.Unlock()
		return fmt.Errorf("%w: session not opened", ErrDelivery)
	}
	if events == nil {
		events = []dto.EventPayload{}
	}
	payload := dto.BatchPayload{
		SessionID: c.sessionID,
		BatchID:   uuid.NewString(),
		StartedAt: c.formatStart(),
		Completed: completed,
		Events:    events,
	}
	if !c.metadataSent {
		payload.Metadata = c.metadata
	}
	if completed {
		payload.EndedAt = c.now().UTC().Format(time.RFC3339Nano)
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	if completed && c.beacon != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal batch: %w", err)
		}
		if c.beacon.Send(c.endpoint, contentType, body) {
			if payload.Metadata != nil {
				c.markMetadataSent(sessionID)
			}
			return nil
		}
		c.logger.Debug("beacon refused batch, falling back to request", "session_id", sessionID)
	}

	if err := c.post(ctx, payload); err != nil {
		c.logger.Warn("batch delivery failed",
			"error", err,
			"session_id", sessionID,
			"events", len(events),
			"completed", completed,
		)
		return err
	}
	if payload.Metadata != nil {
		c.markMetadataSent(sessionID)
	}
	return nil
}

func (c *Client) formatStart() string {
	if c.startedAt.IsZero() {
		return ""
	}
	return c.startedAt.UTC().Format(time.RFC3339Nano)
}

func (c *Client) post(ctx context.Context, payload dto.BatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: collector returned status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}
