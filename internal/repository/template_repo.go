package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentledger/internal/domain"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context) ([]domain.ExpenseTemplate, error) {
	var templates []domain.ExpenseTemplate
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*domain.ExpenseTemplate, error) {
	var t domain.ExpenseTemplate
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *domain.ExpenseTemplate) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *domain.ExpenseTemplate) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete detaches expenses from the template, then removes it.
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Expense{}).Where("template_id = ?", id).Update("template_id", nil).Error; err != nil {
			return fmt.Errorf("detach template expenses: %w", err)
		}
		res := tx.Delete(&domain.ExpenseTemplate{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete template: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
