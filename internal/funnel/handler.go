package funnel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eleven-am/insight-backend/internal/dto"
	"github.com/eleven-am/insight-backend/internal/flow"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SessionLister interface {
	List(ctx context.Context) ([]*recording.Session, error)
}

type Handler struct {
	store    *Store
	sessions SessionLister
	logger   *slog.Logger
}

func NewHandler(store *Store, sessions SessionLister, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

func funnelToResponse(f *Funnel, sessions []*recording.Session) dto.FunnelResponse {
	return dto.FunnelResponse{
		ID:        f.ID,
		Name:      f.Name,
		Steps:     Compute(f, sessions),
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}

// List godoc
// @Summary      List funnels
// @Description  Returns every funnel with step conversion computed over all stored sessions
// @Tags         funnels
// @Produce      json
// @Success      200  {array}   dto.FunnelResponse
// @Failure      500  {object}  shared.APIError
// @Router       /funnels [get]
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()

	funnels, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list funnels", "error", err)
		return shared.InternalError("list_failed", "failed to list funnels")
	}

	sessions, err := h.sessions.List(ctx)
	if err != nil {
		h.logger.Error("failed to load sessions", "error", err)
		return shared.InternalError("funnel_failed", "failed to compute funnels")
	}

	response := make([]dto.FunnelResponse, len(funnels))
	for i, f := range funnels {
		response[i] = funnelToResponse(f, sessions)
	}
	return c.JSON(http.StatusOK, response)
}

// Get godoc
// @Summary      Get a funnel
// @Tags         funnels
// @Produce      json
// @Param        id   path      string  true  "Funnel ID"
// @Success      200  {object}  dto.FunnelResponse
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /funnels/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	f, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("funnel_not_found", "funnel not found")
		}
		h.logger.Error("failed to get funnel", "error", err, "funnel_id", id)
		return shared.InternalError("get_failed", "failed to get funnel")
	}

	sessions, err := h.sessions.List(ctx)
	if err != nil {
		h.logger.Error("failed to load sessions", "error", err)
		return shared.InternalError("funnel_failed", "failed to compute funnel")
	}

	return c.JSON(http.StatusOK, funnelToResponse(f, sessions))
}

// Delete godoc
// @Summary      Delete a funnel
// @Tags         funnels
// @Param        id   path  string  true  "Funnel ID"
// @Success      204  "No Content"
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /funnels/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("funnel_not_found", "funnel not found")
		}
		h.logger.Error("failed to delete funnel", "error", err, "funnel_id", id)
		return shared.InternalError("delete_failed", "failed to delete funnel")
	}

	h.logger.Info("funnel deleted", "funnel_id", id)
	return c.NoContent(http.StatusNoContent)
}

// Create godoc
// @Summary      Create a funnel
// @Description  Stores a named, ordered list of page routes
// @Tags         funnels
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateFunnelRequest  true  "Funnel definition"
// @Success      201      {object}  dto.FunnelResponse
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /funnels [post]
func (h *Handler) Create(c echo.Context) error {
	var req dto.CreateFunnelRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	f, err := funnelFromRequest(req)
	if err != nil {
		return shared.BadRequest("invalid_funnel", err.Error())
	}

	ctx := c.Request().Context()
	if err := h.store.Create(ctx, f); err != nil {
		h.logger.Error("failed to create funnel", "error", err)
		return shared.InternalError("create_failed", "failed to create funnel")
	}

	sessions, err := h.sessions.List(ctx)
	if err != nil {
		h.logger.Warn("funnel created without step data", "error", err, "funnel_id", f.ID)
		sessions = nil
	}

	h.logger.Info("funnel created", "funnel_id", f.ID, "steps", len(f.Pages))
	return c.JSON(http.StatusCreated, funnelToResponse(f, sessions))
}

var validate = validator.New()

func validateRequest(req *dto.CreateFunnelRequest) error {
	err := validate.Struct(req)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func funnelFromRequest(req dto.CreateFunnelRequest) (*Funnel, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	f := &Funnel{
		Name:      name,
		Pages:     make(shared.StringSlice, len(req.Steps)),
		StepNames: make(shared.StringSlice, len(req.Steps)),
	}
	for i, step := range req.Steps {
		page, ok := flow.NormalizePageValue(step.Page)
		if !ok {
			return nil, fmt.Errorf("step %d: %q is not a page route", i+1, step.Page)
		}
		f.Pages[i] = page
		f.StepNames[i] = strings.TrimSpace(step.Name)
	}
	return f, nil
}
