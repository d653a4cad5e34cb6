// internal/metrics/rollup.go
package metrics

import (
	"sort"

	"github.com/opsintel/chainsight/internal/domain"
)

// Supplier performance score weights: delivery performance dominates cost
// efficiency.
const (
	supplierDeliveryWeight = 0.6
	supplierCostWeight     = 0.4
)

// SupplierRollup aggregates records per supplier. The performance score is
// 0.6 x on-time rate + 0.4 x cost efficiency, where cost efficiency is
// 100 x (1 - group mean cost / max group mean cost). Rows are sorted by
// performance score descending, supplier ascending on ties. Returns nil
// when the supplier column is absent.
func SupplierRollup(t *domain.Table) []domain.SupplierPerformance {
	if !t.HasColumn(domain.ColSupplier) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return r.Supplier })

	rows := make([]domain.SupplierPerformance, 0, len(groups))
	for supplier, idx := range groups {
		row := domain.SupplierPerformance{Supplier: supplier, Orders: len(idx)}

		costs := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() })
		for _, c := range costs {
			row.TotalCost += c
		}
		row.AvgCost = Mean(costs)

		for _, q := range collect(t, idx, func(r domain.Record) (float64, bool) { return r.Qty() }) {
			row.TotalQuantity += q
		}
		row.AvgUnitPrice = Mean(collect(t, idx, func(r domain.Record) (float64, bool) { return r.Price() }))

		var delivered, delayed int
		partners := make(map[string]struct{})
		methods := make(map[string]int)
		for _, i := range idx {
			r := t.Records[i]
			if r.Status == domain.StatusDelivered {
				delivered++
			}
			if r.Status == domain.StatusDelayed {
				delayed++
			}
			if r.LogisticsPartner != "" {
				partners[r.LogisticsPartner] = struct{}{}
			}
			if r.ShippingMethod != "" {
				methods[r.ShippingMethod]++
			}
		}
		row.OnTimeRate = rate(delivered, len(idx))
		row.DelayRate = rate(delayed, len(idx))
		row.PartnersUsed = len(partners)
		row.PrimaryMethod = mode(methods)

		rows = append(rows, row)
	}

	// Cost efficiency needs the max group mean, so it is a second pass.
	var maxMean float64
	for _, row := range rows {
		if row.AvgCost > maxMean {
			maxMean = row.AvgCost
		}
	}
	for i := range rows {
		if maxMean > 0 {
			rows[i].CostEfficiency = 100 * (1 - rows[i].AvgCost/maxMean)
		}
		rows[i].PerformanceScore = supplierDeliveryWeight*rows[i].OnTimeRate +
			supplierCostWeight*rows[i].CostEfficiency
	}

	sortRows(rows,
		func(s domain.SupplierPerformance) float64 { return s.PerformanceScore },
		func(s domain.SupplierPerformance) string { return s.Supplier },
	)
	return rows
}

// LogisticsRollup aggregates records per logistics partner. The reliability
// score is delivered rate minus delay rate. Rows are sorted by reliability
// descending, partner ascending on ties. Returns nil when the partner
// column is absent.
func LogisticsRollup(t *domain.Table) []domain.LogisticsPerformance {
	if !t.HasColumn(domain.ColLogisticsPartner) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return r.LogisticsPartner })

	rows := make([]domain.LogisticsPerformance, 0, len(groups))
	for partner, idx := range groups {
		row := domain.LogisticsPerformance{Partner: partner, Orders: len(idx)}

		var delivered, delayed, pending int
		suppliers := make(map[string]struct{})
		methods := make(map[string]int)
		for _, i := range idx {
			r := t.Records[i]
			switch r.Status {
			case domain.StatusDelivered:
				delivered++
			case domain.StatusDelayed:
				delayed++
			case domain.StatusPending:
				pending++
			}
			if r.Supplier != "" {
				suppliers[r.Supplier] = struct{}{}
			}
			if r.ShippingMethod != "" {
				methods[r.ShippingMethod]++
			}
		}
		row.DeliveredRate = rate(delivered, len(idx))
		row.DelayRate = rate(delayed, len(idx))
		row.PendingRate = rate(pending, len(idx))
		row.SuppliersServed = len(suppliers)
		row.PrimaryMethod = mode(methods)
		row.ReliabilityScore = row.DeliveredRate - row.DelayRate

		costs := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() })
		for _, c := range costs {
			row.TotalCost += c
		}
		row.AvgCost = Mean(costs)

		rows = append(rows, row)
	}

	sortRows(rows,
		func(l domain.LogisticsPerformance) float64 { return l.ReliabilityScore },
		func(l domain.LogisticsPerformance) string { return l.Partner },
	)
	return rows
}

// WarehouseRollup aggregates records per warehouse location, sorted by
// total cost descending. Returns nil when the warehouse column is absent.
func WarehouseRollup(t *domain.Table) []domain.WarehousePerformance {
	if !t.HasColumn(domain.ColWarehouse) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return r.Warehouse })

	rows := make([]domain.WarehousePerformance, 0, len(groups))
	for warehouse, idx := range groups {
		row := domain.WarehousePerformance{Warehouse: warehouse, Orders: len(idx)}

		costs := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() })
		for _, c := range costs {
			row.TotalCost += c
		}
		row.AvgCost = Mean(costs)

		var delayed int
		for _, i := range idx {
			if t.Records[i].Status == domain.StatusDelayed {
				delayed++
			}
		}
		row.DelayRate = rate(delayed, len(idx))

		rows = append(rows, row)
	}

	sortRows(rows,
		func(w domain.WarehousePerformance) float64 { return w.TotalCost },
		func(w domain.WarehousePerformance) string { return w.Warehouse },
	)
	return rows
}

// MethodRollup aggregates records per shipping method, sorted by delivered
// rate descending. Returns nil when the method column is absent.
func MethodRollup(t *domain.Table) []domain.MethodPerformance {
	if !t.HasColumn(domain.ColShippingMethod) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return r.ShippingMethod })

	rows := make([]domain.MethodPerformance, 0, len(groups))
	for method, idx := range groups {
		row := domain.MethodPerformance{Method: method, Orders: len(idx)}

		costs := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() })
		for _, c := range costs {
			row.TotalCost += c
		}
		row.AvgCost = Mean(costs)

		var delivered, delayed int
		for _, i := range idx {
			switch t.Records[i].Status {
			case domain.StatusDelivered:
				delivered++
			case domain.StatusDelayed:
				delayed++
			}
		}
		row.DeliveredRate = rate(delivered, len(idx))
		row.DelayRate = rate(delayed, len(idx))

		rows = append(rows, row)
	}

	sortRows(rows,
		func(m domain.MethodPerformance) float64 { return m.DeliveredRate },
		func(m domain.MethodPerformance) string { return m.Method },
	)
	return rows
}

// ProductRollup aggregates records per product: inventory value, quantity,
// turnover (total quantity over average order quantity) and unit-price
// spread. Rows are sorted by total value descending. Returns nil when the
// product column is absent.
func ProductRollup(t *domain.Table) []domain.ProductInventory {
	if !t.HasColumn(domain.ColProduct) {
		return nil
	}

	groups := groupIndices(t, func(r domain.Record) string { return r.Product })

	rows := make([]domain.ProductInventory, 0, len(groups))
	for product, idx := range groups {
		row := domain.ProductInventory{Product: product, Orders: len(idx)}

		for _, c := range collect(t, idx, func(r domain.Record) (float64, bool) { return r.Cost() }) {
			row.TotalValue += c
		}

		quantities := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Qty() })
		for _, q := range quantities {
			row.TotalQuantity += q
		}
		if avgQty := Mean(quantities); avgQty > 0 {
			row.Turnover = row.TotalQuantity / avgQty
		}

		prices := collect(t, idx, func(r domain.Record) (float64, bool) { return r.Price() })
		row.AvgUnitPrice = Mean(prices)
		row.PriceStdDev = sampleStdDev(prices)
		for i, p := range prices {
			if i == 0 || p < row.MinUnitPrice {
				row.MinUnitPrice = p
			}
			if p > row.MaxUnitPrice {
				row.MaxUnitPrice = p
			}
		}

		rows = append(rows, row)
	}

	sortRows(rows,
		func(p domain.ProductInventory) float64 { return p.TotalValue },
		func(p domain.ProductInventory) string { return p.Product },
	)
	return rows
}

// groupIndices buckets record indices by a grouping key, skipping records
// whose key is empty.
func groupIndices(t *domain.Table, key func(domain.Record) string) map[string][]int {
	groups := make(map[string][]int)
	for i, r := range t.Records {
		if k := key(r); k != "" {
			groups[k] = append(groups[k], i)
		}
	}
	return groups
}

// collect gathers present values of a nullable field for a group.
func collect(t *domain.Table, idx []int, value func(domain.Record) (float64, bool)) []float64 {
	values := make([]float64, 0, len(idx))
	for _, i := range idx {
		if v, ok := value(t.Records[i]); ok {
			values = append(values, v)
		}
	}
	return values
}

// mode returns the most frequent key, preferring the lexically smaller key
// on ties so the result is deterministic.
func mode(counts map[string]int) string {
	var best string
	bestCount := -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}

// sortRows orders rows by score descending, breaking ties by key ascending.
func sortRows[T any](rows []T, score func(T) float64, key func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := score(rows[i]), score(rows[j])
		if si != sj {
			return si > sj
		}
		return key(rows[i]) < key(rows[j])
	})
}
