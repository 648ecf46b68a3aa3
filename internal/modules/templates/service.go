package templates

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
	templates   TemplateRepositoryInterface
	invalidator Invalidator
}

func NewService(templates TemplateRepositoryInterface, invalidator Invalidator) *Service {
	return &Service{templates: templates, invalidator: invalidator}
}

func (s *Service) List(ctx context.Context) ([]domain.ExpenseTemplate, error) {
	return s.templates.List(ctx)
}

func (s *Service) Create(ctx context.Context, actorID int64, req CreateTemplateRequest) (*domain.ExpenseTemplate, error) {
	t := &domain.ExpenseTemplate{Name: strings.TrimSpace(req.Name)}
	if req.DefaultCost != nil {
		t.DefaultCost = decimal.NewNullDecimal(*req.DefaultCost)
	}
	t.Stamp(actorID)

	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.TagExpenses)
	return t, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateTemplateRequest) (*domain.ExpenseTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	switch {
	case req.DefaultCost != nil:
		t.DefaultCost = decimal.NewNullDecimal(*req.DefaultCost)
	case req.ClearDefaultCost:
		t.DefaultCost = decimal.NullDecimal{}
	}
	t.Touch(actorID)

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.TagExpenses)
	return t, nil
}

// Delete removes the template. Expenses created from it keep their values.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidator.Invalidate(ctx, events.TagExpenses)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}
