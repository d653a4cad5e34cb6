package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/chainsight/internal/domain"
)

var allColumns = []string{
	domain.ColSupplier,
	domain.ColProduct,
	domain.ColWarehouse,
	domain.ColLogisticsPartner,
	domain.ColShippingMethod,
	domain.ColUnitPrice,
	domain.ColQuantity,
	domain.ColTotalCost,
	domain.ColDeliveryDate,
	domain.ColDeliveryStatus,
}

func f(v float64) *float64 { return &v }

func repeat(template domain.Record, n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = template
	}
	return records
}

func TestRiskAnalysisHighRisk(t *testing.T) {
	// 9 delayed out of 30 = 30%, above the high-risk threshold. SlowBoat
	// carries all the delays; FastShip carries none.
	var records []domain.Record
	records = append(records, repeat(domain.Record{
		LogisticsPartner: "SlowBoat", Status: domain.StatusDelayed, TotalCost: f(100),
	}, 9)...)
	records = append(records, repeat(domain.Record{
		LogisticsPartner: "SlowBoat", Status: domain.StatusDelivered, TotalCost: f(100),
	}, 6)...)
	records = append(records, repeat(domain.Record{
		LogisticsPartner: "FastShip", Status: domain.StatusDelivered, TotalCost: f(100),
	}, 15)...)
	table := domain.NewTable(records, allColumns...)

	insights := RiskAnalysis(table)
	require.Len(t, insights, 4)

	assert.Equal(t, "HIGH RISK: 30.0% of orders are delayed (9 out of 30 orders)", insights[0])
	assert.Equal(t, "Root cause: SlowBoat has 60.0% delay rate vs FastShip at 0.0%", insights[1])
	assert.Equal(t, "Consider shifting volume from SlowBoat to FastShip to reduce delays", insights[2])
	// 9 x 100 delayed out of 30 x 100 total.
	assert.Equal(t, "Financial impact: $900 in delayed shipments (30.0% of total cost)", insights[3])
}

func TestRiskAnalysisMediumAndLow(t *testing.T) {
	build := func(delayed, total int) *domain.Table {
		var records []domain.Record
		records = append(records, repeat(domain.Record{Status: domain.StatusDelayed, TotalCost: f(10)}, delayed)...)
		records = append(records, repeat(domain.Record{Status: domain.StatusDelivered, TotalCost: f(10)}, total-delayed)...)
		return domain.NewTable(records, allColumns...)
	}

	// 20% sits between the medium and high thresholds.
	medium := RiskAnalysis(build(4, 20))
	require.NotEmpty(t, medium)
	assert.Equal(t, "MEDIUM RISK: 20.0% delay rate requires monitoring", medium[0])

	// 10% is under the medium threshold.
	low := RiskAnalysis(build(2, 20))
	require.NotEmpty(t, low)
	assert.Equal(t, "LOW RISK: 10.0% delay rate is within acceptable range", low[0])
}

func TestRiskAnalysisEmptyTable(t *testing.T) {
	assert.Nil(t, RiskAnalysis(domain.EmptyTable()))
}

func TestDelayImpact(t *testing.T) {
	records := []domain.Record{
		{Status: domain.StatusDelayed, TotalCost: f(150)},
		{Status: domain.StatusDelivered, TotalCost: f(350)},
		{Status: domain.StatusDelayed, TotalCost: nil},
	}
	table := domain.NewTable(records, allColumns...)

	cost, pct := DelayImpact(table)
	assert.InDelta(t, 150.0, cost, 1e-9)
	assert.InDelta(t, 30.0, pct, 1e-9)
}

func TestSupplierConcentrationFires(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Acme", TotalCost: f(450)},
		{Supplier: "Bolt", TotalCost: f(300)},
		{Supplier: "Core", TotalCost: f(250)},
	}
	table := domain.NewTable(records, allColumns...)

	recs := CostRecommendations(table)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs, "Diversify sourcing: supplier Acme accounts for 45.0% of total spend")
}

func TestSupplierConcentrationBelowThreshold(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Acme", TotalCost: f(350)},
		{Supplier: "Bolt", TotalCost: f(350)},
		{Supplier: "Core", TotalCost: f(300)},
	}
	table := domain.NewTable(records, allColumns...)

	for _, rec := range CostRecommendations(table) {
		assert.NotContains(t, rec, "Diversify sourcing")
	}
}

func TestPriceVariationFires(t *testing.T) {
	// Widget prices {10, 20}: stddev/min = 7.07/10 > 0.15. Gadget prices
	// {10, 10.1}: well under the threshold.
	records := []domain.Record{
		{Product: "Widget", UnitPrice: f(10)},
		{Product: "Widget", UnitPrice: f(20)},
		{Product: "Gadget", UnitPrice: f(10)},
		{Product: "Gadget", UnitPrice: f(10.1)},
	}
	table := domain.NewTable(records, allColumns...)

	recs := CostRecommendations(table)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs, "Standardize pricing for products with high price variation: Widget")
}

func TestVolumeConsolidationNamesTwoLowest(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Tiny", Quantity: f(5)},
		{Supplier: "Small", Quantity: f(10)},
		{Supplier: "Huge", Quantity: f(500)},
	}
	table := domain.NewTable(records, allColumns...)

	recs := CostRecommendations(table)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs,
		"Consolidate order volumes from low-volume suppliers Tiny and Small to qualify for bulk rates")
}

func TestVolumeConsolidationNeedsTwoSuppliers(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Only", Quantity: f(5)},
	}
	table := domain.NewTable(records, allColumns...)

	for _, rec := range CostRecommendations(table) {
		assert.NotContains(t, rec, "Consolidate order volumes")
	}
}

func TestLogisticsInefficiencyFires(t *testing.T) {
	// Four method x partner groups. The Air/SlowBoat group has both the
	// highest mean cost and the highest delay rate, so it sits strictly
	// above both 75th percentiles.
	var records []domain.Record
	records = append(records, repeat(domain.Record{
		ShippingMethod: "Air", LogisticsPartner: "SlowBoat",
		Status: domain.StatusDelayed, TotalCost: f(1000),
	}, 4)...)
	records = append(records, repeat(domain.Record{
		ShippingMethod: "Air", LogisticsPartner: "FastShip",
		Status: domain.StatusDelivered, TotalCost: f(100),
	}, 4)...)
	records = append(records, repeat(domain.Record{
		ShippingMethod: "Sea", LogisticsPartner: "SlowBoat",
		Status: domain.StatusDelivered, TotalCost: f(50),
	}, 4)...)
	records = append(records, repeat(domain.Record{
		ShippingMethod: "Sea", LogisticsPartner: "FastShip",
		Status: domain.StatusDelivered, TotalCost: f(60),
	}, 4)...)
	table := domain.NewTable(records, allColumns...)

	recs := CostRecommendations(table)
	assert.Contains(t, recs,
		"Review shipping method and logistics partner combinations with both high cost and high delay rates")
}

func TestCostRecommendationsQuietDataset(t *testing.T) {
	// Balanced spend and stable prices; quantity and logistics columns are
	// absent so their rules are skipped entirely.
	records := []domain.Record{
		{Supplier: "Acme", Product: "Widget", UnitPrice: f(10), TotalCost: f(100)},
		{Supplier: "Bolt", Product: "Widget", UnitPrice: f(10), TotalCost: f(100)},
		{Supplier: "Core", Product: "Widget", UnitPrice: f(10), TotalCost: f(100)},
	}
	table := domain.NewTable(records,
		domain.ColSupplier, domain.ColProduct, domain.ColUnitPrice, domain.ColTotalCost)

	assert.Empty(t, CostRecommendations(table))
}

func TestCostRecommendationsMissingColumnsAreSkipped(t *testing.T) {
	records := []domain.Record{{Supplier: "Acme"}}
	table := domain.NewTable(records, domain.ColSupplier)
	assert.Empty(t, CostRecommendations(table))
}

func TestAllCombinesRiskAndCost(t *testing.T) {
	records := []domain.Record{
		{Supplier: "Acme", Status: domain.StatusDelivered, TotalCost: f(100), Quantity: f(10)},
		{Supplier: "Bolt", Status: domain.StatusDelivered, TotalCost: f(50), Quantity: f(5)},
	}
	table := domain.NewTable(records, allColumns...)

	combined := All(table)
	require.NotEmpty(t, combined)
	// Risk insights always come first.
	assert.Contains(t, combined[0], "LOW RISK")
}
