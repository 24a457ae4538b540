package dashboard

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Metric{}, &Alert{}, &User{})
}

func (s *Store) ListMetrics(ctx context.Context) ([]Metric, error) {
	var metrics []Metric
	err := s.db.WithContext(ctx).Order("position ASC, name ASC").Find(&metrics).Error
	return metrics, err
}

func (s *Store) ListAlerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	err := s.db.WithContext(ctx).Order("timestamp DESC, id ASC").Find(&alerts).Error
	return alerts, err
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, err
}

// Seed upserts every row by primary key in a single transaction.
func (s *Store) Seed(ctx context.Context, metrics []Metric, alerts []Alert, users []User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range metrics {
			if metrics[i].Position == 0 {
				metrics[i].Position = i + 1
			}
			if err := tx.Save(&metrics[i]).Error; err != nil {
				return err
			}
		}
		for i := range alerts {
			if err := tx.Save(&alerts[i]).Error; err != nil {
				return err
			}
		}
		for i := range users {
			if err := tx.Save(&users[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
