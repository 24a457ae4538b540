package recorder

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/eleven-am/insight-backend/internal/dto"
	"github.com/google/uuid"
)

const (
	DefaultFlushInterval = 3000 * time.Millisecond
	DefaultBufferCap     = 5000

	pointerMoveThrottle = 50 * time.Millisecond
	scrollThrottle      = 100 * time.Millisecond
)

const (
	eventMouseMove  = "mousemove"
	eventClick      = "click"
	eventScroll     = "scroll"
	eventHover      = "hover"
	eventNavigation = "navigation"
)

// Sink receives drained batches. A non-nil error means the batch was not
// accepted and will be retried on the next flush.
type Sink interface {
	Open(sessionID string, startedAt time.Time, metadata dto.MetadataPayload)
	Send(ctx context.Context, events []dto.EventPayload, completed bool) error
}

// Environment describes the monitored page at session start.
type Environment struct {
	URL              string
	UserAgent        string
	Referrer         string
	Language         string
	Timezone         string
	ScreenWidth      int
	ScreenHeight     int
	DevicePixelRatio float64
}

type Options struct {
	SessionID     string
	Sink          Sink
	Environment   Environment
	FlushInterval time.Duration
	// BufferCap bounds the buffer; the oldest events are dropped first.
	// Zero means DefaultBufferCap, a negative value disables the cap.
	BufferCap int
	Now       func() time.Time
	Logger    *slog.Logger
}

type Recorder struct {
	sessionID string
	sink      Sink
	env       Environment
	interval  time.Duration
	bufferCap int
	now       func() time.Time
	logger    *slog.Logger

	mu         sync.Mutex
	started    bool
	stopped    bool
	startedAt  time.Time
	buffer     []dto.EventPayload
	dropped    int
	lastMove   time.Time
	lastScroll time.Time

	flushMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(opts Options) *Recorder {
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.BufferCap == 0 {
		opts.BufferCap = DefaultBufferCap
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Recorder{
		sessionID: opts.SessionID,
		sink:      opts.Sink,
		env:       opts.Environment,
		interval:  opts.FlushInterval,
		bufferCap: opts.BufferCap,
		now:       opts.Now,
		logger:    opts.Logger.With("session_id", opts.SessionID),
	}
}

func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Dropped reports how many events were evicted by the buffer cap.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Buffered reports how many events are waiting for delivery.
func (r *Recorder) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffer)
}

// Start opens the session on the sink, flushes once and then keeps flushing on
// the configured interval until Stop.
func (r *Recorder) Start(ctx context.Context) {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.started = true
	r.startedAt = r.now()
	startedAt := r.startedAt
	r.mu.Unlock()

	r.sink.Open(r.sessionID, startedAt, r.metadata(startedAt))
	go r.flushLoop(loopCtx)
}

func (r *Recorder) metadata(startedAt time.Time) dto.MetadataPayload {
	meta := dto.MetadataPayload{
		StartedAt:        startedAt.UTC().Format(time.RFC3339Nano),
		URL:              r.env.URL,
		UserAgent:        r.env.UserAgent,
		Referrer:         r.env.Referrer,
		Language:         r.env.Language,
		Timezone:         r.env.Timezone,
		DevicePixelRatio: r.env.DevicePixelRatio,
	}
	if r.env.ScreenWidth > 0 && r.env.ScreenHeight > 0 {
		meta.Screen = &dto.ScreenPayload{Width: r.env.ScreenWidth, Height: r.env.ScreenHeight}
	}
	return meta
}

func (r *Recorder) flushLoop(ctx context.Context) {
	defer close(r.done)

	if err := r.flush(ctx, false); err != nil {
		r.logger.Warn("initial flush failed", "error", err, "session_id", r.sessionID)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.flush(ctx, false); err != nil {
				r.logger.Warn("periodic flush failed", "error", err, "session_id", r.sessionID, "buffered", r.Buffered())
			}
		}
	}
}

// FlushNow delivers the buffer synchronously.
func (r *Recorder) FlushNow(ctx context.Context) error {
	return r.flush(ctx, false)
}

func (r *Recorder) VisibilityHidden(ctx context.Context) error {
	return r.flush(ctx, false)
}

func (r *Recorder) Blur(ctx context.Context) error {
	return r.flush(ctx, false)
}

// Unload ends the session the way a closing page does.
func (r *Recorder) Unload(ctx context.Context) error {
	return r.Stop(ctx)
}

// Stop halts the flush loop and sends the final completed batch. Signals after
// Stop are ignored.
func (r *Recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	<-r.done

	return r.flush(ctx, true)
}

func (r *Recorder) flush(ctx context.Context, completed bool) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	batch := r.buffer
	r.buffer = nil
	r.mu.Unlock()

	if err := r.sink.Send(ctx, batch, completed); err != nil {
		r.requeue(batch)
		return err
	}
	return nil
}

func (r *Recorder) requeue(batch []dto.EventPayload) {
	if len(batch) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = append(batch, r.buffer...)
	r.enforceCap()
}

func (r *Recorder) enforceCap() {
	if r.bufferCap < 0 || len(r.buffer) <= r.bufferCap {
		return
	}
	excess := len(r.buffer) - r.bufferCap
	r.dropped += excess
	r.buffer = append(r.buffer[:0:0], r.buffer[excess:]...)
}

func (r *Recorder) record(e dto.EventPayload, at time.Time) {
	e.Timestamp = r.relative(at)
	r.buffer = append(r.buffer, e)
	r.enforceCap()
}

func (r *Recorder) relative(at time.Time) int64 {
	ms := math.Round(float64(at.Sub(r.startedAt)) / float64(time.Millisecond))
	if ms < 0 {
		return 0
	}
	return int64(ms)
}

func (r *Recorder) active() bool {
	return r.started && !r.stopped
}

func (r *Recorder) PointerMove(x, y float64) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active() || now.Sub(r.lastMove) < pointerMoveThrottle {
		return
	}
	r.lastMove = now
	r.record(dto.EventPayload{Type: eventMouseMove, X: &x, Y: &y}, now)
}

func (r *Recorder) Scroll(scrollX, scrollY float64) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active() || now.Sub(r.lastScroll) < scrollThrottle {
		return
	}
	r.lastScroll = now
	r.record(dto.EventPayload{Type: eventScroll, ScrollX: &scrollX, ScrollY: &scrollY}, now)
}

func (r *Recorder) Click(x, y float64, button int, el Element) {
	now := r.now()
	target := ResolveTarget(el)
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active() {
		return
	}
	r.record(dto.EventPayload{Type: eventClick, X: &x, Y: &y, Button: &button, Target: target}, now)
}

func (r *Recorder) HoverEnter(x, y float64, el Element) {
	r.hover(x, y, el, "enter")
}

func (r *Recorder) HoverLeave(x, y float64, el Element) {
	r.hover(x, y, el, "leave")
}

// hover only records interactive targets.
func (r *Recorder) hover(x, y float64, el Element, phase string) {
	now := r.now()
	target := ResolveTarget(el)
	if target == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active() {
		return
	}
	r.record(dto.EventPayload{Type: eventHover, X: &x, Y: &y, Target: target, Phase: phase}, now)
}

func (r *Recorder) Navigate(url string) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active() {
		return
	}
	r.record(dto.EventPayload{Type: eventNavigation, URL: url}, now)
}
