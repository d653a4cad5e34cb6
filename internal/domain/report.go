package domain

import "time"

// Risk level labels for the overview card.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// OperationsOverview is the payload of the operations overview page.
type OperationsOverview struct {
	Counts    BasicCounts     `json:"counts"`
	Delivery  DeliveryMetrics `json:"delivery"`
	RiskLevel string          `json:"risk_level"`
}

// RiskReport is the payload of the supply-chain risk page.
type RiskReport struct {
	Insights       []string               `json:"insights"`
	Partners       []LogisticsPerformance `json:"partners"`
	DelayedCost    float64                `json:"delayed_cost"`
	DelayedCostPct float64                `json:"delayed_cost_pct"`
}

// PerformanceReport is the payload of the performance analytics page.
type PerformanceReport struct {
	DeliveredRate   float64                `json:"delivery_success_rate"`
	AvgOrderCost    float64                `json:"avg_order_cost"`
	BestMethod      string                 `json:"best_shipping_method"`
	AtRiskOrders    int                    `json:"orders_needing_attention"`
	TotalOrders     int                    `json:"total_orders"`
	StatusBreakdown []StatusSummary        `json:"status_breakdown"`
	Suppliers       []SupplierPerformance  `json:"suppliers"`
	Methods         []MethodPerformance    `json:"shipping_methods"`
	Warehouses      []WarehousePerformance `json:"warehouses"`
}

// InventoryReport is the payload of the inventory management page.
type InventoryReport struct {
	KPIs     InventoryKPIs      `json:"kpis"`
	Products []ProductInventory `json:"products"`
	ABC      []ABCItem          `json:"abc_classification"`
}

// CostReport is the payload of the cost-optimization page.
type CostReport struct {
	KPIs            CostKPIs `json:"kpis"`
	Recommendations []string `json:"recommendations"`
}

// DashboardSnapshot bundles every page payload for a single dataset state.
type DashboardSnapshot struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source"`
	Rows        int                `json:"rows"`
	Overview    OperationsOverview `json:"overview"`
	Risk        RiskReport         `json:"risk"`
	Performance PerformanceReport  `json:"performance"`
	Inventory   InventoryReport    `json:"inventory"`
	Cost        CostReport         `json:"cost"`
}
