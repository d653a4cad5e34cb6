// internal/metrics/kpis.go
package metrics

import "github.com/opsintel/chainsight/internal/domain"

// highValueFactor marks orders whose cost exceeds this multiple of the
// mean order cost.
const highValueFactor = 2.0

// InventoryKPIs computes the scalar metrics of the inventory page. The
// turnover rate is the delivered share of total quantity. All zeros for an
// empty table.
func InventoryKPIs(t *domain.Table) domain.InventoryKPIs {
	kpis := domain.InventoryKPIs{TotalOrders: t.Len()}
	if t.Empty() {
		return kpis
	}

	if t.HasColumn(domain.ColProduct) {
		kpis.UniqueProducts = distinct(t, func(r domain.Record) string { return r.Product })
	}
	if t.HasColumn(domain.ColSupplier) {
		kpis.UniqueSuppliers = distinct(t, func(r domain.Record) string { return r.Supplier })
	}

	var costs, prices []float64
	var deliveredQty float64
	for _, r := range t.Records {
		if c, ok := r.Cost(); ok {
			kpis.TotalInventoryValue += c
			costs = append(costs, c)
		}
		if p, ok := r.Price(); ok {
			prices = append(prices, p)
		}
		if q, ok := r.Qty(); ok {
			kpis.TotalQuantity += q
			if r.Status == domain.StatusDelivered {
				deliveredQty += q
			}
		}
	}
	kpis.AvgUnitPrice = Mean(prices)
	kpis.TurnoverRate = share(deliveredQty, kpis.TotalQuantity)

	if threshold := Mean(costs) * highValueFactor; threshold > 0 {
		for _, c := range costs {
			if c > threshold {
				kpis.HighValueOrders++
			}
		}
	}

	return kpis
}

// CostKPIs computes the scalar metrics of the cost-optimization page.
// Potential savings assume every order of a product could have been placed
// at that product's minimum observed unit price.
func CostKPIs(t *domain.Table) domain.CostKPIs {
	kpis := domain.CostKPIs{}
	if t.Empty() {
		return kpis
	}

	var costs, prices []float64
	var delayedCost float64
	for _, r := range t.Records {
		if c, ok := r.Cost(); ok {
			kpis.TotalCost += c
			costs = append(costs, c)
			if r.Status == domain.StatusDelayed {
				delayedCost += c
			}
		}
		if p, ok := r.Price(); ok {
			prices = append(prices, p)
		}
	}
	kpis.AvgUnitCost = Mean(prices)
	kpis.AvgOrderCost = Mean(costs)
	kpis.DelayCostImpact = share(delayedCost, kpis.TotalCost)

	for _, p := range ProductRollup(t) {
		if spread := p.AvgUnitPrice - p.MinUnitPrice; spread > 0 {
			kpis.PotentialSavings += spread * p.TotalQuantity
		}
	}
	kpis.SavingsPct = share(kpis.PotentialSavings, kpis.TotalCost)

	return kpis
}
