package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentledger/internal/domain"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// ListWithActivity returns every asset, newest first, with locations and their expenses.
func (r *AssetRepository) ListWithActivity(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	err := r.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC, id DESC") }).
		Preload("Locations.Expenses").
		Order("created_at DESC, id DESC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

func (r *AssetRepository) GetWithActivity(ctx context.Context, id int64) (*domain.Asset, error) {
	var a domain.Asset
	err := r.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC, id DESC") }).
		Preload("Locations.Expenses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&a, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	var a domain.Asset
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AssetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Asset{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check asset: %w", err)
	}
	return n > 0, nil
}

func (r *AssetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Asset{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

func (r *AssetRepository) Create(ctx context.Context, a *domain.Asset) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) Update(ctx context.Context, a *domain.Asset) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error; err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// Delete removes the asset, its locations and their expenses in one transaction.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locationIDs := tx.Model(&domain.Location{}).Select("id").Where("asset_id = ?", id)
		if err := tx.Where("location_id IN (?)", locationIDs).Delete(&domain.Expense{}).Error; err != nil {
			return fmt.Errorf("delete asset expenses: %w", err)
		}
		if err := tx.Where("asset_id = ?", id).Delete(&domain.Location{}).Error; err != nil {
			return fmt.Errorf("delete asset locations: %w", err)
		}
		res := tx.Delete(&domain.Asset{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete asset: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
