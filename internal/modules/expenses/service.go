package expenses

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
	"rentledger/internal/modules/events"
	"rentledger/internal/repository"
)

type Service struct {
	expenses    ExpenseRepositoryInterface
	templates   TemplateReader
	locations   LocationChecker
	invalidator Invalidator
}

func NewService(expenses ExpenseRepositoryInterface, templates TemplateReader, locations LocationChecker, invalidator Invalidator) *Service {
	return &Service{expenses: expenses, templates: templates, locations: locations, invalidator: invalidator}
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	e, err := s.expenses.GetDetail(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Create stores a new expense. A template fills in whatever name or cost the
// request left out; a template without a default cost counts as zero.
func (s *Service) Create(ctx context.Context, actorID int64, req ExpenseRequest) (*domain.Expense, error) {
	name := trimmed(req.Name)
	cost := req.Cost

	if req.TemplateID != nil {
		tpl, err := s.template(ctx, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = tpl.Name
		}
		if cost == nil {
			c := decimal.Zero
			if tpl.DefaultCost.Valid {
				c = tpl.DefaultCost.Decimal
			}
			cost = &c
		}
	}

	if name == "" {
		return nil, ErrNameMissing
	}
	if cost == nil {
		return nil, ErrCostMissing
	}
	if err := s.checkLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	e := &domain.Expense{
		Name:       name,
		Cost:       *cost,
		LocationID: req.LocationID,
		TemplateID: req.TemplateID,
	}
	e.Stamp(actorID)

	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return e, nil
}

// Update merges the request into the stored expense. When a template applies,
// fields the request omits are refreshed from it.
func (s *Service) Update(ctx context.Context, actorID, id int64, req ExpenseRequest) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	name := trimmed(req.Name)
	if name != "" {
		e.Name = name
	}
	if req.Cost != nil {
		e.Cost = *req.Cost
	}
	if req.TemplateID != nil {
		e.TemplateID = req.TemplateID
	}
	if req.LocationID != nil {
		e.LocationID = req.LocationID
	}

	if e.TemplateID != nil {
		tpl, err := s.template(ctx, *e.TemplateID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			e.Name = tpl.Name
		}
		if req.Cost == nil && tpl.DefaultCost.Valid {
			e.Cost = tpl.DefaultCost.Decimal
		}
	}
	if err := s.checkLocation(ctx, e.LocationID); err != nil {
		return nil, err
	}
	e.Touch(actorID)

	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return nil
}

func (s *Service) template(ctx context.Context, id int64) (*domain.ExpenseTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTemplateMissing
	}
	return tpl, err
}

func (s *Service) checkLocation(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.locations.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLocationMissing
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return err
}
