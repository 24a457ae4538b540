package bootstrap

import (
	"log/slog"
	"os"

	_ "github.com/eleven-am/insight-backend/docs"
	"github.com/eleven-am/insight-backend/internal/dashboard"
	"github.com/eleven-am/insight-backend/internal/flow"
	"github.com/eleven-am/insight-backend/internal/funnel"
	"github.com/eleven-am/insight-backend/internal/gateway"
	"github.com/eleven-am/insight-backend/internal/heatmap"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/telemetry"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	RecordingHandler *recording.Handler
	FlowHandler      *flow.Handler
	HeatmapHandler   *heatmap.Handler
	FunnelHandler    *funnel.Handler
	DashboardHandler *dashboard.Handler
	Metrics          *telemetry.Metrics
	Config           *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	ingestLimiter := gateway.RateLimiter(gateway.RateLimiterConfig{
		RequestsPerSecond: params.Config.IngestRatePerSecond,
		Burst:             params.Config.IngestBurst,
		CleanupInterval:   gateway.DefaultRateLimiterConfig().CleanupInterval,
	})

	params.RecordingHandler.RegisterRoutes(e.Group("/sessions"), ingestLimiter)
	params.FlowHandler.RegisterRoutes(e.Group("/userflow"))
	params.HeatmapHandler.RegisterRoutes(e.Group("/heatmap"))
	params.FunnelHandler.RegisterRoutes(e.Group("/funnels"))
	params.DashboardHandler.RegisterRoutes(e.Group(""))

	e.GET("/debug/metrics", echo.WrapHandler(params.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideRecordingHandler(store *recording.Store, publisher recording.Publisher, metrics *telemetry.Metrics, logger *slog.Logger) *recording.Handler {
	return recording.NewHandler(store, publisher, metrics, logger.With("handler", "recording"))
}

func ProvideFlowHandler(store *recording.Store, logger *slog.Logger) *flow.Handler {
	return flow.NewHandler(store, logger.With("handler", "flow"))
}

func ProvideHeatmapHandler(store *recording.Store, logger *slog.Logger) *heatmap.Handler {
	return heatmap.NewHandler(store, logger.With("handler", "heatmap"))
}

func ProvideFunnelHandler(store *funnel.Store, sessions *recording.Store, logger *slog.Logger) *funnel.Handler {
	return funnel.NewHandler(store, sessions, logger.With("handler", "funnel"))
}

func ProvideDashboardHandler(store *dashboard.Store, logger *slog.Logger) *dashboard.Handler {
	return dashboard.NewHandler(store, logger.With("handler", "dashboard"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideRecordingHandler,
		ProvideFlowHandler,
		ProvideHeatmapHandler,
		ProvideFunnelHandler,
		ProvideDashboardHandler,
	),
	fx.Invoke(RegisterRoutes),
)
