package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentledger/internal/domain"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// LocationFilter narrows chart and trend queries. Nil fields are ignored.
type LocationFilter struct {
	AssetID     *int64
	CreatedByID *int64
	From        *time.Time
	To          *time.Time
}

func (r *LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Expenses").
		Order("date DESC, id DESC").
		Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// ListWithAsset loads locations matching f with their asset, oldest first.
func (r *LocationRepository) ListWithAsset(ctx context.Context, f LocationFilter) ([]domain.Location, error) {
	q := r.db.WithContext(ctx).Preload("Asset")
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	if f.CreatedByID != nil {
		q = q.Where("created_by_id = ?", *f.CreatedByID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}

	var locations []domain.Location
	if err := q.Order("date ASC, id ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (r *LocationRepository) GetDetail(ctx context.Context, id int64) (*domain.Location, error) {
	var l domain.Location
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Expenses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&l, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var l domain.Location
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *LocationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Location{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check location: %w", err)
	}
	return n > 0, nil
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error; err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error; err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete removes the location with its expenses.
func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&domain.Expense{}).Error; err != nil {
			return fmt.Errorf("delete location expenses: %w", err)
		}
		res := tx.Delete(&domain.Location{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete location: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
