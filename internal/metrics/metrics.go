// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/opsintel/chainsight/internal/classify"
	"github.com/opsintel/chainsight/internal/domain"
)

// BasicCounts computes the headline dataset counts. An empty table or a
// missing column yields zeros, never an error.
func BasicCounts(t *domain.Table) domain.BasicCounts {
	counts := domain.BasicCounts{}
	if t.HasColumn(domain.ColSupplier) {
		counts.Suppliers = distinct(t, func(r domain.Record) string { return r.Supplier })
	}
	if t.HasColumn(domain.ColProduct) {
		counts.Products = distinct(t, func(r domain.Record) string { return r.Product })
	}
	if t.HasColumn(domain.ColWarehouse) {
		counts.Warehouses = distinct(t, func(r domain.Record) string { return r.Warehouse })
	}
	if t.HasColumn(domain.ColLogisticsPartner) {
		counts.LogisticsPartners = distinct(t, func(r domain.Record) string { return r.LogisticsPartner })
	}
	if t.HasColumn(domain.ColTotalCost) {
		for _, r := range t.Records {
			if cost, ok := r.Cost(); ok {
				counts.TotalCost += cost
			}
		}
	}
	return counts
}

// DeliveryRates computes the delivery-performance rate metrics against an
// explicit reference date. Every rate is a percentage of all records; the
// average delivery time is the mean calendar day of delivered records'
// delivery dates. All zeros when the table is empty or the delivery
// columns are absent.
func DeliveryRates(t *domain.Table, today time.Time) domain.DeliveryMetrics {
	dm := domain.DeliveryMetrics{}
	if t.Empty() || !t.HasColumns(domain.ColDeliveryStatus, domain.ColDeliveryDate) {
		return dm
	}

	categories := classify.CategorizeTable(t, today)
	total := t.Len()

	var counts [5]int
	var daySum float64
	var dayCount int
	for i, category := range categories {
		switch category {
		case domain.CategoryDelivered:
			counts[0]++
			if d := t.Records[i].DeliveryDate; d != nil {
				daySum += float64(d.Day())
				dayCount++
			}
		case domain.CategoryOnTrack:
			counts[1]++
		case domain.CategoryOverdue:
			counts[2]++
		case domain.CategoryDelayed:
			counts[3]++
		default:
			counts[4]++
		}
	}

	dm.CompletedRate = rate(counts[0], total)
	dm.OnTrackRate = rate(counts[1], total)
	dm.OverdueRate = rate(counts[2], total)
	dm.DelayedRate = rate(counts[3], total)
	dm.UnknownRate = rate(counts[4], total)
	dm.OverallPerformanceRate = rate(counts[0]+counts[1], total)
	if dayCount > 0 {
		dm.AvgDeliveryTime = daySum / float64(dayCount)
	}
	return dm
}

// StatusSummaries breaks the table down by raw delivery status: order
// count, share and cost totals per status. Rows are ordered by order count
// descending, status ascending on ties.
func StatusSummaries(t *domain.Table) []domain.StatusSummary {
	if !t.HasColumns(domain.ColDeliveryStatus, domain.ColTotalCost) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return string(r.Status) })
	total := t.Len()

	rows := make([]domain.StatusSummary, 0, len(groups))
	for status, idx := range groups {
		row := domain.StatusSummary{
			Status: domain.DeliveryStatus(status),
			Orders: len(idx),
		}
		costs := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() })
		for _, c := range costs {
			row.TotalCost += c
		}
		row.AvgCost = Mean(costs)
		row.Percentage = rate(len(idx), total)
		rows = append(rows, row)
	}

	sortRows(rows,
		func(s domain.StatusSummary) float64 { return float64(s.Orders) },
		func(s domain.StatusSummary) string { return string(s.Status) },
	)
	return rows
}

// distinct counts unique non-empty key values across the table.
func distinct(t *domain.Table, key func(domain.Record) string) int {
	seen := make(map[string]struct{})
	for _, r := range t.Records {
		if k := key(r); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
