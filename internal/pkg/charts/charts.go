// Package charts groups rental events into calendar buckets for the dashboard charts.
package charts

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
)

type GroupBy string

const (
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

// OthersKey names the series that sums every asset outside the top series.
const OthersKey = "Others"

const TopSeries = 4

var ErrInvalidGroupBy = errors.New("groupBy must be month or year")

func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", GroupByMonth:
		return GroupByMonth, nil
	case GroupByYear:
		return GroupByYear, nil
	}
	return "", ErrInvalidGroupBy
}

// Point is the projection of a location the charts need.
type Point struct {
	Date      time.Time             `json:"date"`
	AssetID   int64                 `json:"assetId"`
	AssetName string                `json:"assetName"`
	Price     decimal.Decimal       `json:"price"`
	Status    domain.LocationStatus `json:"status"`
}

type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Row struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
}

type Series struct {
	Buckets []Bucket `json:"buckets"`
	Keys    []string `json:"keys"`
	Rows    []Row    `json:"rows"`
}

func bucketKey(t time.Time, g GroupBy) string {
	t = t.UTC()
	if g == GroupByYear {
		return t.Format("2006")
	}
	return t.Format("2006-01")
}

func bucketLabel(t time.Time, g GroupBy) string {
	t = t.UTC()
	if g == GroupByYear {
		return t.Format("2006")
	}
	return t.Format("01/06")
}

// BuildBuckets returns every bucket from the earliest to the latest point, gaps included.
func BuildBuckets(points []Point, g GroupBy) []Bucket {
	if len(points) == 0 {
		return []Bucket{}
	}

	minDate, maxDate := points[0].Date.UTC(), points[0].Date.UTC()
	for _, p := range points[1:] {
		d := p.Date.UTC()
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	var cursor time.Time
	if g == GroupByYear {
		cursor = time.Date(minDate.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	} else {
		cursor = time.Date(minDate.Year(), minDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	var buckets []Bucket
	for !cursor.After(maxDate) {
		buckets = append(buckets, Bucket{Key: bucketKey(cursor, g), Label: bucketLabel(cursor, g)})
		if g == GroupByYear {
			cursor = cursor.AddDate(1, 0, 0)
		} else {
			cursor = cursor.AddDate(0, 1, 0)
		}
	}
	return buckets
}

// BuildSeries counts events per bucket for the most active assets; the rest are folded into Others.
func BuildSeries(points []Point, g GroupBy) Series {
	buckets := BuildBuckets(points, g)

	totals := make(map[string]int)
	for _, p := range points {
		totals[p.AssetName]++
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	top := names
	if len(top) > TopSeries {
		top = names[:TopSeries]
	}
	inTop := make(map[string]bool, len(top))
	for _, name := range top {
		inTop[name] = true
	}
	hasOthers := len(names) > TopSeries

	keys := append([]string{}, top...)
	if hasOthers {
		keys = append(keys, OthersKey)
	}

	rows := make([]Row, len(buckets))
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		counts := make(map[string]int, len(keys))
		for _, k := range keys {
			counts[k] = 0
		}
		rows[i] = Row{Key: b.Key, Label: b.Label, Counts: counts}
		index[b.Key] = i
	}

	for _, p := range points {
		i, ok := index[bucketKey(p.Date, g)]
		if !ok {
			continue
		}
		if inTop[p.AssetName] {
			rows[i].Counts[p.AssetName]++
		} else {
			rows[i].Counts[OthersKey]++
		}
	}

	return Series{Buckets: buckets, Keys: keys, Rows: rows}
}

type RevenuePoint struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyRevenue sums prices over a fixed window of months starting at from's month.
func MonthlyRevenue(points []Point, from time.Time, months int) []RevenuePoint {
	if months <= 0 {
		return []RevenuePoint{}
	}
	from = from.UTC()
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]RevenuePoint, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		key := bucketKey(m, GroupByMonth)
		out[i] = RevenuePoint{Key: key, Label: bucketLabel(m, GroupByMonth), Revenue: decimal.Zero}
		index[key] = i
	}

	for _, p := range points {
		if i, ok := index[bucketKey(p.Date, GroupByMonth)]; ok {
			out[i].Revenue = out[i].Revenue.Add(p.Price)
		}
	}
	return out
}

type AssetRevenue struct {
	AssetID   int64           `json:"assetId"`
	AssetName string          `json:"assetName"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopRevenueByAsset returns the n assets with the highest revenue, ties by name.
func TopRevenueByAsset(points []Point, n int) []AssetRevenue {
	byAsset := make(map[int64]*AssetRevenue)
	for _, p := range points {
		ar, ok := byAsset[p.AssetID]
		if !ok {
			ar = &AssetRevenue{AssetID: p.AssetID, AssetName: p.AssetName, Revenue: decimal.Zero}
			byAsset[p.AssetID] = ar
		}
		ar.Revenue = ar.Revenue.Add(p.Price)
	}

	out := make([]AssetRevenue, 0, len(byAsset))
	for _, ar := range byAsset {
		out = append(out, *ar)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].AssetName < out[j].AssetName
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// StatusCounts counts points per location status; every known status is present.
func StatusCounts(points []Point) map[domain.LocationStatus]int {
	counts := map[domain.LocationStatus]int{
		domain.LocationPlanned:   0,
		domain.LocationCompleted: 0,
		domain.LocationCancelled: 0,
	}
	for _, p := range points {
		counts[p.Status]++
	}
	return counts
}
