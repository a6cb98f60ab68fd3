package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pescaderia-api/models"
)

func saleOn(date string, total float64) models.Sale {
	ts, _ := time.Parse("2006-01-02", date)
	return models.Sale{Total: total, CreatedAt: ts}
}

func TestAggregateByDay(t *testing.T) {
	svc := NewReportService(nil)

	sales := []models.Sale{
		saleOn("2024-01-05", 10),
		saleOn("2024-01-05", 5),
		saleOn("2024-02-10", 7),
	}

	buckets := svc.Aggregate(sales, GranularityDay)

	require.Len(t, buckets, 2)
	assert.Equal(t, BucketTotals{Total: 15, Count: 2}, buckets["2024-01-05"])
	assert.Equal(t, BucketTotals{Total: 7, Count: 1}, buckets["2024-02-10"])
}

func TestAggregateByMonth(t *testing.T) {
	svc := NewReportService(nil)

	sales := []models.Sale{
		saleOn("2024-01-05", 10),
		saleOn("2024-01-05", 5),
		saleOn("2024-02-10", 7),
	}

	buckets := svc.Aggregate(sales, GranularityMonth)

	require.Len(t, buckets, 2)
	assert.Equal(t, BucketTotals{Total: 15, Count: 2}, buckets["2024-01"])
	assert.Equal(t, BucketTotals{Total: 7, Count: 1}, buckets["2024-02"])
}

func TestAggregateCountsTransactionsNotQuantities(t *testing.T) {
	svc := NewReportService(nil)

	sale := saleOn("2024-03-01", 50)
	sale.Details = []models.SaleDetail{
		{Kind: models.KindProduct, ItemID: 1, Quantity: 4},
		{Kind: models.KindCombo, ItemID: 1, Quantity: 2},
	}

	buckets := svc.Aggregate([]models.Sale{sale}, GranularityDay)
	assert.Equal(t, 1, buckets["2024-03-01"].Count)
}

func TestAggregateSkipsMissingTimestamps(t *testing.T) {
	svc := NewReportService(nil)

	sales := []models.Sale{
		saleOn("2024-01-05", 10),
		{Total: 99}, // zero CreatedAt, dropped
		saleOn("2024-01-05", 5),
	}

	buckets := svc.Aggregate(sales, GranularityDay)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketTotals{Total: 15, Count: 2}, buckets["2024-01-05"])
}

func TestBucketsSortedDescendingWithAverages(t *testing.T) {
	svc := NewReportService(nil)

	sales := []models.Sale{
		saleOn("2024-01-05", 10),
		saleOn("2024-03-01", 9),
		saleOn("2024-01-05", 5),
		saleOn("2024-02-10", 7),
	}

	rows := svc.Buckets(sales, GranularityDay)

	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-01", rows[0].Key)
	assert.Equal(t, "2024-02-10", rows[1].Key)
	assert.Equal(t, "2024-01-05", rows[2].Key)

	assert.Equal(t, 7.5, rows[2].Average)
	for _, row := range rows {
		assert.Greater(t, row.Count, 0, "no bucket may exist with count 0")
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityDay, g)

	g, err = ParseGranularity("month")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonth, g)

	_, err = ParseGranularity("week")
	assert.Error(t, err)
}
