package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pescaderia-api/models"
	"pescaderia-api/utils"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, "":
		return GranularityDay, nil
	case GranularityMonth:
		return GranularityMonth, nil
	}
	return "", fmt.Errorf("invalid granularity %q (want day or month)", s)
}

// BucketTotals accumulates the sales that fall on one day or month.
// Count is the number of transactions, not the summed item quantities.
type BucketTotals struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Bucket is one row of the report, with the display-only average.
type Bucket struct {
	Key     string  `json:"key"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ReportService folds historical sales into time buckets. Buckets are
// recomputed from scratch on every call and hold no identity across calls.
type ReportService struct {
	sales SaleStore
}

func NewReportService(sales SaleStore) *ReportService {
	return &ReportService{sales: sales}
}

// Aggregate groups sales by day or month of their creation time. Records with
// a missing timestamp are skipped, not counted, and never create a bucket, so
// every bucket that exists has count >= 1.
func (s *ReportService) Aggregate(sales []models.Sale, granularity Granularity) map[string]BucketTotals {
	buckets := make(map[string]BucketTotals)
	for _, sale := range sales {
		if sale.CreatedAt.IsZero() {
			continue
		}

		var key string
		switch granularity {
		case GranularityMonth:
			key = sale.CreatedAt.Format("2006-01")
		default:
			key = sale.CreatedAt.Format("2006-01-02")
		}

		b := buckets[key]
		b.Total = utils.Round2(b.Total + sale.Total)
		b.Count++
		buckets[key] = b
	}
	return buckets
}

// Buckets flattens the aggregation into rows sorted by key descending (most
// recent first), filling in the per-bucket average.
func (s *ReportService) Buckets(sales []models.Sale, granularity Granularity) []Bucket {
	totals := s.Aggregate(sales, granularity)

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	rows := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		b := totals[key]
		rows = append(rows, Bucket{
			Key:     key,
			Total:   b.Total,
			Count:   b.Count,
			Average: utils.Round2(b.Total / float64(b.Count)),
		})
	}
	return rows
}

// SalesReport pulls the date range from the store and buckets it.
func (s *ReportService) SalesReport(ctx context.Context, start, end time.Time, granularity Granularity) ([]Bucket, error) {
	sales, err := s.sales.SalesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return s.Buckets(sales, granularity), nil
}
