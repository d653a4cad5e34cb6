// internal/classify/category.go
package classify

import (
	"time"

	"github.com/opsintel/chainsight/internal/domain"
)

// Category derives the delivery-performance category of a single record.
// Branches are evaluated in priority order, first match wins:
//
//  1. Delivered status is authoritative regardless of dates.
//  2. In Transit / Pending with a delivery date on or after today is
//     on-track.
//  3. In Transit / Pending past the delivery date is overdue.
//  4. Explicitly delayed.
//  5. Anything else (unknown status, missing date) is unknown.
//
// today is an explicit parameter so the classification stays pure; callers
// pass a date truncated to midnight.
func Category(status domain.DeliveryStatus, deliveryDate *time.Time, today time.Time) domain.PerformanceCategory {
	inProgress := status == domain.StatusInTransit || status == domain.StatusPending

	switch {
	case status == domain.StatusDelivered:
		return domain.CategoryDelivered
	case inProgress && deliveryDate != nil && !deliveryDate.Before(today):
		return domain.CategoryOnTrack
	case inProgress && deliveryDate != nil && deliveryDate.Before(today):
		return domain.CategoryOverdue
	case status == domain.StatusDelayed:
		return domain.CategoryDelayed
	default:
		return domain.CategoryUnknown
	}
}

// CategorizeTable classifies every record against today and returns the
// categories as a slice parallel to t.Records. The table is never mutated.
func CategorizeTable(t *domain.Table, today time.Time) []domain.PerformanceCategory {
	categories := make([]domain.PerformanceCategory, t.Len())
	if !t.HasColumns(domain.ColDeliveryStatus, domain.ColDeliveryDate) {
		for i := range categories {
			categories[i] = domain.CategoryUnknown
		}
		return categories
	}
	for i, r := range t.Records {
		categories[i] = Category(r.Status, r.DeliveryDate, today)
	}
	return categories
}

// Midnight truncates a wall-clock reading to the calendar date used for
// on-track comparisons.
func Midnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
