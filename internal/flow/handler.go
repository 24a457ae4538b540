package flow

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
	g.GET("", h.UserFlow)
}

// UserFlow godoc
// @Summary      Page transition graph
// @Description  Aggregates page-to-page transitions across all stored sessions
// @Tags         analytics
// @Produce      json
// @Success      200  {array}   flow.Node
// @Failure      500  {object}  shared.APIError
// @Router       /userflow [get]
func (h *Handler) UserFlow(c echo.Context) error {
	sessions, err := h.sessions.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to load sessions", "error", err)
		return shared.InternalError("userflow_failed", "failed to compute user flow")
	}
	return c.JSON(http.StatusOK, BuildGraph(sessions))
}
