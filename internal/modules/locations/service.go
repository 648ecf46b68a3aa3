package locations

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

type Service struct {
	locations   LocationRepositoryInterface
	assets      AssetChecker
	invalidator Invalidator
}

func NewService(locations LocationRepositoryInterface, assets AssetChecker, invalidator Invalidator) *Service {
	return &Service{locations: locations, assets: assets, invalidator: invalidator}
}

func (s *Service) List(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Location, error) {
	l, err := s.locations.GetDetail(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (s *Service) Create(ctx context.Context, actorID int64, req CreateLocationRequest) (*domain.Location, error) {
	if err := s.checkAsset(ctx, req.AssetID); err != nil {
		return nil, err
	}

	l := &domain.Location{
		AssetID:        req.AssetID,
		Date:           time.Now().UTC().Truncate(24 * time.Hour),
		Price:          *req.Price,
		ClientName:     cleanName(req.ClientName),
		LocationStatus: domain.LocationPlanned,
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		l.Date = date
	}
	if req.LocationStatus != nil {
		l.LocationStatus = domain.LocationStatus(*req.LocationStatus)
	}
	l.Stamp(actorID)

	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return l, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateLocationRequest) (*domain.Location, error) {
	l, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if req.AssetID != nil && *req.AssetID != l.AssetID {
		if err := s.checkAsset(ctx, *req.AssetID); err != nil {
			return nil, err
		}
		l.AssetID = *req.AssetID
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		l.Date = date
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.ClientName != nil {
		l.ClientName = cleanName(req.ClientName)
	}
	if req.LocationStatus != nil {
		l.LocationStatus = domain.LocationStatus(*req.LocationStatus)
	}
	l.Touch(actorID)

	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return l, nil
}

// Delete removes the location; its expenses go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidator.Invalidate(ctx, events.LedgerTags...)
	return nil
}

func (s *Service) checkAsset(ctx context.Context, assetID int64) error {
	ok, err := s.assets.Exists(ctx, assetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssetMissing
	}
	return nil
}

// cleanName maps a blank client name to NULL.
func cleanName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLocationNotFound
	}
	return err
}
