package bootstrap

import (
	"log/slog"

	"github.com/eleven-am/insight-backend/internal/dashboard"
	"github.com/eleven-am/insight-backend/internal/funnel"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideRecordingStore(redisClient *redis.Client, cfg *Config, logger *slog.Logger) *recording.Store {
	return recording.NewStore(redisClient, cfg.RecordingTTL, logger)
}

func ProvideFunnelStore(db *gorm.DB) *funnel.Store {
	return funnel.NewStore(db)
}

func ProvideDashboardStore(db *gorm.DB) *dashboard.Store {
	return dashboard.NewStore(db)
}

func RunMigrations(funnelStore *funnel.Store, dashboardStore *dashboard.Store) error {
	if err := funnelStore.Migrate(); err != nil {
		return err
	}
	return dashboardStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideRecordingStore,
		ProvideFunnelStore,
		ProvideDashboardStore,
	),
	fx.Invoke(RunMigrations),
)
