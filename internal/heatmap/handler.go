package heatmap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type SessionLister interface {
	List(ctx context.Context) ([]*recording.Session, error)
}

type Handler struct {
	sessions SessionLister
	logger   *slog.Logger
}

func NewHandler(sessions SessionLister, logger *slog.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.Heatmap)
}

// Heatmap godoc
// @Summary      Interaction heatmap
// @Description  Buckets click, hover or scroll activity onto a fixed canvas
// @Tags         analytics
// @Produce      json
// @Param        type     query     string  false  "click, scroll or hover"
// @Param        url      query     string  false  "Only sessions whose start URL matches"
// @Param        session  query     string  false  "Only this session"
// @Success      200      {object}  heatmap.Result
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /heatmap [get]
func (h *Handler) Heatmap(c echo.Context) error {
	signal, ok := ParseSignal(c.QueryParam("type"))
	if !ok {
		return shared.BadRequest("invalid_type", "type must be one of click, scroll, hover")
	}

	sessions, err := h.sessions.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to load sessions", "error", err)
		return shared.InternalError("heatmap_failed", "failed to compute heatmap")
	}

	return c.JSON(http.StatusOK, Compute(sessions, Query{
		Signal:    signal,
		URL:       c.QueryParam("url"),
		SessionID: c.QueryParam("session"),
	}))
}
