package recording

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/insight-backend/internal/dto"
	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/eleven-am/insight-backend/internal/telemetry"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store     *Store
	publisher Publisher
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

func NewHandler(store *Store, publisher Publisher, metrics *telemetry.Metrics, logger *slog.Logger) *Handler {
	if publisher == nil {
		publisher = NopPublisher()
	}
	return &Handler{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterRoutes mounts the session routes. The ingest middleware applies to
// POST only.
func (h *Handler) RegisterRoutes(g *echo.Group, ingest ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.POST("", h.Ingest, ingest...)
	g.GET("/:id", h.Get)
	g.GET("/:id/replay", h.Replay)
}

// List godoc
// @Summary      List sessions
// @Description  Returns a summary of every stored session, newest first
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   recording.Summary
// @Failure      500  {object}  shared.APIError
// @Router       /sessions [get]
func (h *Handler) List(c echo.Context) error {
	sessions, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list sessions", "error", err)
		return shared.InternalError("list_failed", "failed to list sessions")
	}

	summaries := make([]Summary, len(sessions))
	for i, s := range sessions {
		summaries[i] = Summarize(s)
	}
	return c.JSON(http.StatusOK, summaries)
}

// Get godoc
// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  recording.Summary
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /sessions/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Summarize(sess))
}

// Replay godoc
// @Summary      Get session replay
// @Description  Returns the session's events ordered for playback
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  recording.Timeline
// @Failure      404  {object}  shared.APIError
// @Router       /sessions/{id}/replay [get]
func (h *Handler) Replay(c echo.Context) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReplayTimeline(sess))
}

func (h *Handler) lookup(c echo.Context) (*Session, error) {
	id := c.Param("id")
	sess, err := h.store.Get(c.Request().Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFound("session_not_found", "session not found")
	}
	if err != nil {
		h.logger.Error("failed to get session", "error", err, "session_id", id)
		return nil, shared.InternalError("get_failed", "failed to get session")
	}
	return sess, nil
}

// Ingest godoc
// @Summary      Ingest event batch
// @Description  Creates or extends a session with a batch of captured events. Replayed batch ids are acknowledged without effect.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      dto.IngestRequest  true  "Event batch"
// @Success      200      {object}  dto.StatusResponse
// @Failure      400      {object}  shared.APIError
// @Failure      429      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /sessions [post]
func (h *Handler) Ingest(c echo.Context) error {
	start := time.Now()

	var req dto.IngestRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.ObserveIngest(telemetry.ResultInvalid, 0, 0, 0)
		return shared.BadRequest("invalid_body", "request body must be a JSON object")
	}

	batch, discarded, err := BatchFromRequest(req)
	if err != nil {
		h.metrics.ObserveIngest(telemetry.ResultInvalid, 0, 0, 0)
		return shared.BadRequest("missing_session_id", "sessionId is required")
	}

	defaults := Defaults{
		Origin:         c.Request().Header.Get("Origin"),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
	}

	ctx := c.Request().Context()
	sess, appended, err := h.store.Ingest(ctx, batch, defaults)
	if err != nil {
		h.metrics.ObserveIngest(telemetry.ResultFailed, 0, discarded, time.Since(start))
		h.logger.Error("failed to ingest batch", "error", err, "session_id", batch.SessionID)
		return shared.InternalError("ingest_failed", "failed to store session events")
	}

	result := telemetry.ResultAccepted
	if appended == 0 && len(batch.Events) > 0 {
		result = telemetry.ResultDuplicate
		h.logger.Debug("batch already applied", "session_id", batch.SessionID, "batch_id", batch.BatchID)
	}
	h.metrics.ObserveIngest(result, appended, discarded, time.Since(start))

	if appended > 0 || batch.Completed || batch.Metadata != nil {
		published := IngestedBatch{
			SessionID:  sess.ID,
			BatchID:    batch.BatchID,
			ReceivedAt: start.UTC(),
			StartedAt:  sess.StartedAt,
			Completed:  sess.Completed,
			Metadata:   sess.Metadata,
			Events:     batch.Events,
		}
		if appended == 0 {
			published.Events = []Event{}
		}
		if err := h.publisher.Publish(ctx, published); err != nil {
			h.logger.Warn("failed to publish batch", "error", err, "session_id", sess.ID)
		}
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// BatchFromRequest validates an ingest request and normalizes its events. It
// returns the number of events discarded for lacking a type.
func BatchFromRequest(req dto.IngestRequest) (Batch, int, error) {
	if req.SessionID == "" {
		return Batch{}, 0, shared.ErrValidation
	}

	events := NormalizeEvents(req.Events)
	b := Batch{
		SessionID: req.SessionID,
		BatchID:   req.BatchID,
		Events:    events,
		Metadata:  req.Metadata,
		Completed: req.Completed,
	}
	if req.StartedAt != "" {
		if t, err := ParseTime(req.StartedAt); err == nil {
			b.StartedAt = &t
		}
	}
	if req.EndedAt != "" {
		if t, err := ParseTime(req.EndedAt); err == nil {
			b.EndedAt = &t
		}
	}
	return b, len(req.Events) - len(events), nil
}
