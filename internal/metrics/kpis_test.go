package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsintel/chainsight/internal/domain"
)

func TestInventoryKPIsEmptyTable(t *testing.T) {
	kpis := InventoryKPIs(domain.EmptyTable())
	assert.Zero(t, kpis.TotalOrders)
	assert.Zero(t, kpis.TotalInventoryValue)
	assert.Zero(t, kpis.TurnoverRate)
}

func TestInventoryKPIs(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Acme", Product: "Widget", Status: domain.StatusDelivered, TotalCost: f(100), Quantity: f(30), UnitPrice: f(10)},
		{Supplier: "Acme", Product: "Gadget", Status: domain.StatusPending, TotalCost: f(100), Quantity: f(10), UnitPrice: f(20)},
		{Supplier: "Bolt", Product: "Widget", Status: domain.StatusDelayed, TotalCost: f(700), Quantity: f(10), UnitPrice: f(30)},
	}
	table := domain.NewTable(records, allColumns...)

	kpis := InventoryKPIs(table)
	assert.Equal(t, 3, kpis.TotalOrders)
	assert.Equal(t, 2, kpis.UniqueProducts)
	assert.Equal(t, 2, kpis.UniqueSuppliers)
	assert.InDelta(t, 900.0, kpis.TotalInventoryValue, 1e-9)
	assert.InDelta(t, 50.0, kpis.TotalQuantity, 1e-9)
	assert.InDelta(t, 20.0, kpis.AvgUnitPrice, 1e-9)
	// Delivered 30 out of 50 total quantity.
	assert.InDelta(t, 60.0, kpis.TurnoverRate, 1e-9)
	// Mean cost 300, threshold 600: only the 700 order qualifies.
	assert.Equal(t, 1, kpis.HighValueOrders)
}

func TestCostKPIs(t *testing.T) {
	records := []domain.Record{
		{Product: "Widget", Status: domain.StatusDelivered, TotalCost: f(300), Quantity: f(10), UnitPrice: f(30)},
		{Product: "Widget", Status: domain.StatusDelayed, TotalCost: f(100), Quantity: f(10), UnitPrice: f(10)},
	}
	table := domain.NewTable(records, allColumns...)

	kpis := CostKPIs(table)
	assert.InDelta(t, 400.0, kpis.TotalCost, 1e-9)
	assert.InDelta(t, 20.0, kpis.AvgUnitCost, 1e-9)
	assert.InDelta(t, 200.0, kpis.AvgOrderCost, 1e-9)
	// One delayed order of 100 out of 400 total.
	assert.InDelta(t, 25.0, kpis.DelayCostImpact, 1e-9)
	// (avg 20 - min 10) x 20 units of Widget.
	assert.InDelta(t, 200.0, kpis.PotentialSavings, 1e-9)
	assert.InDelta(t, 50.0, kpis.SavingsPct, 1e-9)
}

func TestCostKPIsEmptyTable(t *testing.T) {
	kpis := CostKPIs(domain.EmptyTable())
	assert.Zero(t, kpis.TotalCost)
	assert.Zero(t, kpis.PotentialSavings)
	assert.Zero(t, kpis.DelayCostImpact)
}
