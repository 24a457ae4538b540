package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes mounts the read-only dashboard collections on the root group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/metrics", h.Metrics)
	g.GET("/alerts", h.Alerts)
	g.GET("/users", h.Users)
}

// Metrics godoc
// @Summary      List headline metrics
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   Metric
// @Failure      500  {object}  shared.APIError
// @Router       /metrics [get]
func (h *Handler) Metrics(c echo.Context) error {
	metrics, err := h.store.ListMetrics(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list metrics", "error", err)
		return shared.InternalError("list_failed", "failed to list metrics")
	}
	if metrics == nil {
		metrics = []Metric{}
	}
	return c.JSON(http.StatusOK, metrics)
}

// Alerts godoc
// @Summary      List alerts
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   Alert
// @Failure      500  {object}  shared.APIError
// @Router       /alerts [get]
func (h *Handler) Alerts(c echo.Context) error {
	alerts, err := h.store.ListAlerts(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list alerts", "error", err)
		return shared.InternalError("list_failed", "failed to list alerts")
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}

// Users godoc
// @Summary      List dashboard users
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   User
// @Failure      500  {object}  shared.APIError
// @Router       /users [get]
func (h *Handler) Users(c echo.Context) error {
	users, err := h.store.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		return shared.InternalError("list_failed", "failed to list users")
	}
	if users == nil {
		users = []User{}
	}
	return c.JSON(http.StatusOK, users)
}
