package assets

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/modules/events"
	"rentledger/internal/pkg/utils"
	"rentledger/internal/repository"
)

const listCacheKey = "assets:list"

type Service struct {
	assets      AssetRepositoryInterface
	expenses    GlobalExpenseReader
	cache       ListCache
	invalidator Invalidator
}

func NewService(assets AssetRepositoryInterface, expenses GlobalExpenseReader, cache ListCache, invalidator Invalidator) *Service {
	return &Service{assets: assets, expenses: expenses, cache: cache, invalidator: invalidator}
}

// List returns every asset with its figures, newest first.
func (s *Service) List(ctx context.Context) ([]AssetView, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached, nil
	}

	list, err := s.assets.ListWithActivity(ctx)
	if err != nil {
		return nil, err
	}
	global, err := s.expenses.GlobalTotal(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AssetView, 0, len(list))
	for _, a := range list {
		views = append(views, newView(a, global, int64(len(list)), false))
	}
	s.cache.Set(listCacheKey, views, events.TagAssets, events.TagLocations, events.TagExpenses)
	return views, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*AssetView, error) {
	a, err := s.assets.GetWithActivity(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	count, err := s.assets.Count(ctx)
	if err != nil {
		return nil, err
	}
	global, err := s.expenses.GlobalTotal(ctx)
	if err != nil {
		return nil, err
	}

	v := newView(*a, global, count, true)
	return &v, nil
}

func (s *Service) Create(ctx context.Context, actorID int64, req CreateAssetRequest) (*domain.Asset, error) {
	a := &domain.Asset{
		Name:          strings.TrimSpace(req.Name),
		Category:      defaultCategory,
		Status:        domain.AssetAvailable,
		PurchasePrice: *req.PurchasePrice,
		PurchaseDate:  today(),
	}
	if req.Category != nil {
		a.Category = strings.TrimSpace(*req.Category)
	}
	if req.Status != nil {
		a.Status = domain.AssetStatus(*req.Status)
	}
	if req.PurchaseDate != nil {
		date, err := utils.ParseDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		a.PurchaseDate = date
	}
	a.Stamp(actorID)

	if err := s.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return a, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateAssetRequest) (*domain.Asset, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		a.Category = strings.TrimSpace(*req.Category)
	}
	if req.PurchasePrice != nil {
		a.PurchasePrice = *req.PurchasePrice
	}
	if req.PurchaseDate != nil {
		date, err := utils.ParseDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		a.PurchaseDate = date
	}
	if req.Status != nil {
		a.Status = domain.AssetStatus(*req.Status)
	}
	a.Touch(actorID)

	if err := s.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return a, nil
}

// Delete removes the asset together with its locations and their expenses.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAssetNotFound
	}
	return err
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
