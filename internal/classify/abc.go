package classify

import (
	"sort"

	"github.com/opsintel/chainsight/internal/domain"
)

// Composite score weights for ABC inventory prioritization.
const (
	abcValueWeight    = 0.60
	abcTurnoverWeight = 0.25
	abcQuantityWeight = 0.15
)

// ABC ranks products into classes A, B and C from a weighted composite of
// inventory value, turnover and quantity. Each raw metric is normalized by
// its maximum across all products (0 when the maximum is 0). Class A covers
// the top 20% of products, class B the next 30%, class C the remainder,
// with truncating cutoffs. The sort is stable so equal scores at a cutoff
// boundary keep their input order; adding or removing a product can shift
// every other product's class because the cutoffs are rank-based.
func ABC(products []domain.ProductInventory) []domain.ABCItem {
	if len(products) == 0 {
		return nil
	}

	var maxValue, maxTurnover, maxQuantity float64
	for _, p := range products {
		if p.TotalValue > maxValue {
			maxValue = p.TotalValue
		}
		if p.Turnover > maxTurnover {
			maxTurnover = p.Turnover
		}
		if p.TotalQuantity > maxQuantity {
			maxQuantity = p.TotalQuantity
		}
	}

	items := make([]domain.ABCItem, len(products))
	for i, p := range products {
		item := domain.ABCItem{
			Product:       p.Product,
			TotalValue:    p.TotalValue,
			TotalQuantity: p.TotalQuantity,
			Turnover:      p.Turnover,
			ValueScore:    normalize(p.TotalValue, maxValue),
			TurnoverScore: normalize(p.Turnover, maxTurnover),
			QuantityScore: normalize(p.TotalQuantity, maxQuantity),
		}
		item.CompositeScore = abcValueWeight*item.ValueScore +
			abcTurnoverWeight*item.TurnoverScore +
			abcQuantityWeight*item.QuantityScore
		items[i] = item
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompositeScore > items[j].CompositeScore
	})

	n := len(items)
	aCount := n * 20 / 100
	bCount := n * 30 / 100
	for i := range items {
		switch {
		case i < aCount:
			items[i].Class = "A"
		case i < aCount+bCount:
			items[i].Class = "B"
		default:
			items[i].Class = "C"
		}
	}

	return items
}

func normalize(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	return value / max
}
