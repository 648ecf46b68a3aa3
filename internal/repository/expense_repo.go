package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentledger/internal/domain"
	"rentledger/internal/pkg/finance"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.WithContext(ctx).
		Preload("Location.Asset").
		Preload("Template").
		Order("created_at DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) GetDetail(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	err := r.db.WithContext(ctx).
		Preload("Location.Asset").
		Preload("Template").
		First(&e, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// GlobalTotal sums the cost of expenses not attached to a location.
func (r *ExpenseRepository) GlobalTotal(ctx context.Context) (decimal.Decimal, error) {
	costs, err := scanMoney(r.db.WithContext(ctx).
		Model(&domain.Expense{}).
		Select("cost").
		Where("location_id IS NULL"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum global expenses: %w", err)
	}
	return finance.Sum(costs...), nil
}

// scanMoney reads the single money column selected by q, one value per row.
func scanMoney(q *gorm.DB) ([]decimal.Decimal, error) {
	rows, err := q.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []decimal.Decimal
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error; err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Expense{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
