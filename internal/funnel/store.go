package funnel

import (
	"context"
	"errors"

	"github.com/eleven-am/insight-backend/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Funnel{})
}

func (s *Store) Create(ctx context.Context, f *Funnel) error {
	if f.ID == "" {
		f.ID = shared.NewID("fnl_")
	}
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *Store) GetByID(ctx context.Context, id string) (*Funnel, error) {
	var f Funnel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &f, err
}

func (s *Store) List(ctx context.Context) ([]*Funnel, error) {
	var funnels []*Funnel
	err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&funnels).Error
	return funnels, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Funnel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
