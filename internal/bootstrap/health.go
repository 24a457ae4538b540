package bootstrap

import (
	"github.com/eleven-am/insight-backend/internal/health"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/stream"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(
	db *gorm.DB,
	redis *redis.Client,
	sessions *recording.Store,
	archive *stream.ClickHouseSink,
) *health.Handler {
	h := health.NewHandler(db, redis, sessions, version)
	if archive != nil {
		h.AddCheck("clickhouse", archive)
	}
	return h
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(h.Middleware())
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
