// internal/recommend/recommend.go
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opsintel/chainsight/internal/domain"
	"github.com/opsintel/chainsight/internal/metrics"
)

// Rule thresholds. Each rule is evaluated independently; the output list
// preserves the order the rules are declared in.
const (
	highRiskDelayRate   = 25.0
	mediumRiskDelayRate = 15.0
	concentrationShare  = 40.0
	priceVariationRatio = 0.15
	inefficiencyPctl    = 0.75
)

// RiskAnalysis produces the delay-risk advisories: a tiered risk message
// (citing the worst and best logistics partner when the rate is high) and a
// financial-impact line. Returns nil for an empty table.
func RiskAnalysis(t *domain.Table) []string {
	if t.Empty() {
		return nil
	}

	total := t.Len()
	var delayed int
	for _, r := range t.Records {
		if r.Status == domain.StatusDelayed {
			delayed++
		}
	}
	delayedRate := float64(delayed) / float64(total) * 100

	var insights []string
	switch {
	case delayedRate > highRiskDelayRate:
		insights = append(insights, fmt.Sprintf(
			"HIGH RISK: %.1f%% of orders are delayed (%d out of %d orders)",
			delayedRate, delayed, total))
		if worst, best, ok := delayRateExtremes(t); ok {
			insights = append(insights, fmt.Sprintf(
				"Root cause: %s has %.1f%% delay rate vs %s at %.1f%%",
				worst.Partner, worst.DelayRate, best.Partner, best.DelayRate))
			insights = append(insights, fmt.Sprintf(
				"Consider shifting volume from %s to %s to reduce delays",
				worst.Partner, best.Partner))
		}
	case delayedRate > mediumRiskDelayRate:
		insights = append(insights, fmt.Sprintf(
			"MEDIUM RISK: %.1f%% delay rate requires monitoring", delayedRate))
	default:
		insights = append(insights, fmt.Sprintf(
			"LOW RISK: %.1f%% delay rate is within acceptable range", delayedRate))
	}

	delayedCost, costPct := DelayImpact(t)
	insights = append(insights, fmt.Sprintf(
		"Financial impact: $%.0f in delayed shipments (%.1f%% of total cost)",
		delayedCost, costPct))

	return insights
}

// DelayImpact returns the total cost tied up in delayed orders and that
// cost as a percentage of total spend.
func DelayImpact(t *domain.Table) (delayedCost, pctOfTotal float64) {
	var totalCost float64
	for _, r := range t.Records {
		cost, ok := r.Cost()
		if !ok {
			continue
		}
		totalCost += cost
		if r.Status == domain.StatusDelayed {
			delayedCost += cost
		}
	}
	if totalCost > 0 {
		pctOfTotal = delayedCost / totalCost * 100
	}
	return delayedCost, pctOfTotal
}

// CostRecommendations evaluates the cost-optimization rules: supplier
// concentration, product price variation, logistics inefficiency and
// volume consolidation. An empty result means no rule fired; callers render
// that as "no recommendations", not an error.
func CostRecommendations(t *domain.Table) []string {
	if t.Empty() {
		return nil
	}

	var recs []string
	if msg, ok := supplierConcentration(t); ok {
		recs = append(recs, msg)
	}
	if msg, ok := priceVariation(t); ok {
		recs = append(recs, msg)
	}
	if msg, ok := logisticsInefficiency(t); ok {
		recs = append(recs, msg)
	}
	if msg, ok := volumeConsolidation(t); ok {
		recs = append(recs, msg)
	}
	return recs
}

// All combines the risk advisories and cost recommendations in rule order.
func All(t *domain.Table) []string {
	return append(RiskAnalysis(t), CostRecommendations(t)...)
}

// supplierConcentration fires when the top supplier carries more than 40%
// of total spend.
func supplierConcentration(t *domain.Table) (string, bool) {
	if !t.HasColumns(domain.ColSupplier, domain.ColTotalCost) {
		return "", false
	}

	var totalCost float64
	bySupplier := make(map[string]float64)
	for _, r := range t.Records {
		cost, ok := r.Cost()
		if !ok {
			continue
		}
		totalCost += cost
		if r.Supplier != "" {
			bySupplier[r.Supplier] += cost
		}
	}
	if totalCost == 0 {
		return "", false
	}

	var topSupplier string
	var topCost float64
	for supplier, cost := range bySupplier {
		if cost > topCost || (cost == topCost && supplier < topSupplier) {
			topSupplier, topCost = supplier, cost
		}
	}

	sharePct := topCost / totalCost * 100
	if sharePct <= concentrationShare {
		return "", false
	}
	return fmt.Sprintf(
		"Diversify sourcing: supplier %s accounts for %.1f%% of total spend",
		topSupplier, sharePct), true
}

// priceVariation flags products whose unit-price spread (sample stddev over
// minimum price) exceeds the variation threshold, one message for all.
func priceVariation(t *domain.Table) (string, bool) {
	if !t.HasColumns(domain.ColProduct, domain.ColUnitPrice) {
		return "", false
	}

	var flagged []string
	for _, p := range metrics.ProductRollup(t) {
		if p.MinUnitPrice > 0 && p.PriceStdDev/p.MinUnitPrice > priceVariationRatio {
			flagged = append(flagged, p.Product)
		}
	}
	if len(flagged) == 0 {
		return "", false
	}
	sort.Strings(flagged)
	return fmt.Sprintf(
		"Standardize pricing for products with high price variation: %s",
		strings.Join(flagged, ", ")), true
}

// logisticsInefficiency fires when any shipping-method x partner group has
// both its mean cost and delay rate above the 75th percentile of all
// groups. The advisory is generic by design: the per-group detail belongs
// to the rollup tables.
func logisticsInefficiency(t *domain.Table) (string, bool) {
	if !t.HasColumns(domain.ColShippingMethod, domain.ColLogisticsPartner, domain.ColTotalCost) {
		return "", false
	}

	type groupStats struct {
		costs   []float64
		orders  int
		delayed int
	}
	groups := make(map[string]*groupStats)
	for _, r := range t.Records {
		if r.ShippingMethod == "" || r.LogisticsPartner == "" {
			continue
		}
		key := r.ShippingMethod + "\x00" + r.LogisticsPartner
		g, ok := groups[key]
		if !ok {
			g = &groupStats{}
			groups[key] = g
		}
		g.orders++
		if cost, ok := r.Cost(); ok {
			g.costs = append(g.costs, cost)
		}
		if r.Status == domain.StatusDelayed {
			g.delayed++
		}
	}
	if len(groups) == 0 {
		return "", false
	}

	meanCosts := make([]float64, 0, len(groups))
	delayRates := make([]float64, 0, len(groups))
	for _, g := range groups {
		meanCosts = append(meanCosts, metrics.Mean(g.costs))
		delayRates = append(delayRates, float64(g.delayed)/float64(g.orders)*100)
	}
	costCut := metrics.Quantile(meanCosts, inefficiencyPctl)
	delayCut := metrics.Quantile(delayRates, inefficiencyPctl)

	for i := range meanCosts {
		if meanCosts[i] > costCut && delayRates[i] > delayCut {
			return "Review shipping method and logistics partner combinations with both high cost and high delay rates", true
		}
	}
	return "", false
}

// volumeConsolidation names the two lowest-volume suppliers as candidates
// for order consolidation. Needs at least two suppliers.
func volumeConsolidation(t *domain.Table) (string, bool) {
	if !t.HasColumns(domain.ColSupplier, domain.ColQuantity) {
		return "", false
	}

	byQty := make(map[string]float64)
	for _, r := range t.Records {
		if r.Supplier == "" {
			continue
		}
		qty, _ := r.Qty()
		byQty[r.Supplier] += qty
	}
	if len(byQty) < 2 {
		return "", false
	}

	type supplierQty struct {
		name string
		qty  float64
	}
	suppliers := make([]supplierQty, 0, len(byQty))
	for name, qty := range byQty {
		suppliers = append(suppliers, supplierQty{name, qty})
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if suppliers[i].qty != suppliers[j].qty {
			return suppliers[i].qty < suppliers[j].qty
		}
		return suppliers[i].name < suppliers[j].name
	})

	return fmt.Sprintf(
		"Consolidate order volumes from low-volume suppliers %s and %s to qualify for bulk rates",
		suppliers[0].name, suppliers[1].name), true
}

// delayRateExtremes finds the partners with the highest and lowest delay
// rates from the logistics rollup.
func delayRateExtremes(t *domain.Table) (worst, best domain.LogisticsPerformance, ok bool) {
	partners := metrics.LogisticsRollup(t)
	if len(partners) == 0 {
		return worst, best, false
	}
	worst, best = partners[0], partners[0]
	for _, p := range partners[1:] {
		if p.DelayRate > worst.DelayRate {
			worst = p
		}
		if p.DelayRate < best.DelayRate {
			best = p
		}
	}
	return worst, best, true
}
