package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opsintel/chainsight/internal/domain"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestCategoryBranches(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := datePtr(today.AddDate(0, 0, -3))
	future := datePtr(today.AddDate(0, 0, 3))

	tests := []struct {
		name   string
		status domain.DeliveryStatus
		date   *time.Time
		want   domain.PerformanceCategory
	}{
		{"delivered wins regardless of date", domain.StatusDelivered, past, domain.CategoryDelivered},
		{"delivered without date", domain.StatusDelivered, nil, domain.CategoryDelivered},
		{"in transit future date is on track", domain.StatusInTransit, future, domain.CategoryOnTrack},
		{"pending due today is on track", domain.StatusPending, datePtr(today), domain.CategoryOnTrack},
		{"in transit past date is overdue", domain.StatusInTransit, past, domain.CategoryOverdue},
		{"pending past date is overdue", domain.StatusPending, past, domain.CategoryOverdue},
		{"delayed ignores future date", domain.StatusDelayed, future, domain.CategoryDelayed},
		{"in transit without date is unknown", domain.StatusInTransit, nil, domain.CategoryUnknown},
		{"unknown status is unknown", domain.StatusUnknown, future, domain.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.status, tt.date, today))
		})
	}
}

func TestCategorizeTableMissingColumns(t *testing.T) {
	records := []domain.Record{
		{Status: domain.StatusDelivered},
		{Status: domain.StatusDelayed},
	}
	table := domain.NewTable(records, domain.ColSupplier)

	categories := CategorizeTable(table, time.Now())

	assert.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, domain.CategoryUnknown, c)
	}
}

func TestCategorizeTableParallelToRecords(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Status: domain.StatusDelivered},
		{Status: domain.StatusInTransit, DeliveryDate: datePtr(today.AddDate(0, 0, 1))},
		{Status: domain.StatusPending, DeliveryDate: datePtr(today.AddDate(0, 0, -1))},
	}
	table := domain.NewTable(records, domain.ColDeliveryStatus, domain.ColDeliveryDate)

	categories := CategorizeTable(table, today)

	assert.Equal(t, []domain.PerformanceCategory{
		domain.CategoryDelivered,
		domain.CategoryOnTrack,
		domain.CategoryOverdue,
	}, categories)
}

func TestMidnight(t *testing.T) {
	now := time.Date(2024, 6, 15, 17, 42, 9, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Midnight(now))
}
