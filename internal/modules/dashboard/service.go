package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"rentledger/internal/domain"
	"rentledger/internal/modules/events"
	"rentledger/internal/pkg/charts"
	"rentledger/internal/pkg/finance"
	"rentledger/internal/pkg/utils"
	"rentledger/internal/repository"
)

const trendMonths = 12

type Service struct {
	repo      DashboardRepositoryInterface
	locations LocationLister
	cache     SummaryCache
	now       func() time.Time
}

func NewService(repo DashboardRepositoryInterface, locations LocationLister, cache SummaryCache) *Service {
	return &Service{repo: repo, locations: locations, cache: cache, now: time.Now}
}

// Summary aggregates the user's records. The three queries run concurrently.
func (s *Service) Summary(ctx context.Context, userID int64, start, end *time.Time) (Summary, error) {
	if start != nil && end != nil && start.After(*end) {
		return Summary{}, ErrInvalidRange
	}

	key := summaryKey(userID, start, end)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	f := repository.DashboardFilter{UserID: userID, Start: start, End: end}
	var (
		out      Summary
		revenue  decimal.Decimal
		expenses decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, out.Locations, err = s.repo.LocationTotals(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ExpenseTotal(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		out.Assets, out.Purchases, err = s.repo.AssetTotals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := finance.Summarize(revenue, expenses)
	out.Revenue, out.Expenses, out.Net = sum.Revenue, sum.Expenses, sum.Net

	s.cache.Set(key, out, events.TagDashboard)
	return out, nil
}

// Trends covers the user's locations over the current month and the eleven before it.
func (s *Service) Trends(ctx context.Context, userID int64) (Trends, error) {
	from := utils.MonthStart(s.now().UTC()).AddDate(0, -(trendMonths - 1), 0)

	list, err := s.locations.ListWithAsset(ctx, repository.LocationFilter{CreatedByID: &userID, From: &from})
	if err != nil {
		return Trends{}, err
	}

	points := toPoints(list)
	return Trends{
		MonthlyRevenue: charts.MonthlyRevenue(points, from, trendMonths),
		TopAssets:      charts.TopRevenueByAsset(points, charts.TopSeries),
		StatusCounts:   charts.StatusCounts(points),
	}, nil
}

// LocationSeries buckets all locations, optionally for a single asset.
func (s *Service) LocationSeries(ctx context.Context, groupBy charts.GroupBy, assetID *int64) (charts.Series, error) {
	list, err := s.locations.ListWithAsset(ctx, repository.LocationFilter{AssetID: assetID})
	if err != nil {
		return charts.Series{}, err
	}
	return charts.BuildSeries(toPoints(list), groupBy), nil
}

func toPoints(list []domain.Location) []charts.Point {
	points := make([]charts.Point, 0, len(list))
	for _, l := range list {
		p := charts.Point{
			Date:    l.Date,
			AssetID: l.AssetID,
			Price:   l.Price,
			Status:  l.LocationStatus,
		}
		if l.Asset != nil {
			p.AssetName = l.Asset.Name
		}
		points = append(points, p)
	}
	return points
}

func summaryKey(userID int64, start, end *time.Time) string {
	return fmt.Sprintf("dashboard:%d:%s:%s", userID, stamp(start), stamp(end))
}

func stamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
