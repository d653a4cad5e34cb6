package domain

// BasicCounts holds the headline dataset counts for the overview page.
type BasicCounts struct {
	Suppliers         int     `json:"total_suppliers"`
	Products          int     `json:"total_products"`
	Warehouses        int     `json:"total_warehouses"`
	LogisticsPartners int     `json:"total_logistics_partners"`
	TotalCost         float64 `json:"total_cost"`
}

// DeliveryMetrics holds delivery-performance rates as percentages in
// [0,100] plus the average delivery time in days.
type DeliveryMetrics struct {
	CompletedRate          float64 `json:"completed_delivery_rate"`
	OnTrackRate            float64 `json:"on_track_rate"`
	OverdueRate            float64 `json:"overdue_rate"`
	DelayedRate            float64 `json:"delayed_rate"`
	UnknownRate            float64 `json:"unknown_rate"`
	OverallPerformanceRate float64 `json:"overall_performance_rate"`
	AvgDeliveryTime        float64 `json:"avg_delivery_time"`
}

// SupplierPerformance is one supplier rollup row.
type SupplierPerformance struct {
	Supplier         string  `json:"supplier"`
	Orders           int     `json:"orders"`
	TotalCost        float64 `json:"total_cost_sum"`
	AvgCost          float64 `json:"total_cost_mean"`
	TotalQuantity    float64 `json:"total_quantity"`
	AvgUnitPrice     float64 `json:"avg_unit_price"`
	OnTimeRate       float64 `json:"on_time_delivery_rate"`
	DelayRate        float64 `json:"delay_rate"`
	PartnersUsed     int     `json:"logistics_partners_used"`
	PrimaryMethod    string  `json:"primary_shipping_method"`
	CostEfficiency   float64 `json:"cost_efficiency"`
	PerformanceScore float64 `json:"performance_score"`
}

// LogisticsPerformance is one logistics-partner rollup row.
type LogisticsPerformance struct {
	Partner          string  `json:"logistics_partner"`
	Orders           int     `json:"orders"`
	DeliveredRate    float64 `json:"delivery_rate"`
	DelayRate        float64 `json:"delay_rate"`
	PendingRate      float64 `json:"pending_rate"`
	TotalCost        float64 `json:"total_cost_sum"`
	AvgCost          float64 `json:"avg_cost"`
	SuppliersServed  int     `json:"suppliers_served"`
	PrimaryMethod    string  `json:"primary_method"`
	ReliabilityScore float64 `json:"reliability_score"`
}

// WarehousePerformance is one warehouse rollup row.
type WarehousePerformance struct {
	Warehouse string  `json:"warehouse"`
	Orders    int     `json:"orders"`
	TotalCost float64 `json:"total_cost_sum"`
	AvgCost   float64 `json:"avg_cost"`
	DelayRate float64 `json:"delay_rate"`
}

// MethodPerformance is one shipping-method rollup row.
type MethodPerformance struct {
	Method        string  `json:"shipping_method"`
	Orders        int     `json:"orders"`
	TotalCost     float64 `json:"total_cost_sum"`
	AvgCost       float64 `json:"avg_cost"`
	DelayRate     float64 `json:"delay_rate"`
	DeliveredRate float64 `json:"delivered_rate"`
}

// ProductInventory is one product rollup row used by the inventory and
// cost pages and by ABC classification.
type ProductInventory struct {
	Product       string  `json:"product"`
	Orders        int     `json:"orders"`
	TotalValue    float64 `json:"total_value"`
	TotalQuantity float64 `json:"total_quantity"`
	Turnover      float64 `json:"turnover"`
	AvgUnitPrice  float64 `json:"avg_unit_price"`
	MinUnitPrice  float64 `json:"min_unit_price"`
	MaxUnitPrice  float64 `json:"max_unit_price"`
	PriceStdDev   float64 `json:"price_std_dev"`
}

// ABCItem is a product with its composite priority score and class.
type ABCItem struct {
	Product        string  `json:"product"`
	TotalValue     float64 `json:"total_value"`
	TotalQuantity  float64 `json:"total_quantity"`
	Turnover       float64 `json:"turnover"`
	ValueScore     float64 `json:"value_score"`
	TurnoverScore  float64 `json:"turnover_score"`
	QuantityScore  float64 `json:"quantity_score"`
	CompositeScore float64 `json:"composite_score"`
	Class          string  `json:"class"`
}

// StatusSummary is one row of the delivery-status breakdown table.
type StatusSummary struct {
	Status     DeliveryStatus `json:"status"`
	Orders     int            `json:"orders"`
	Percentage float64        `json:"percentage"`
	TotalCost  float64        `json:"total_cost"`
	AvgCost    float64        `json:"avg_cost"`
}

// InventoryKPIs are the scalar metrics of the inventory page.
type InventoryKPIs struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
	TotalQuantity       float64 `json:"total_quantity"`
	TurnoverRate        float64 `json:"turnover_rate"`
	UniqueProducts      int     `json:"unique_products"`
	UniqueSuppliers     int     `json:"unique_suppliers"`
	AvgUnitPrice        float64 `json:"avg_unit_price"`
	HighValueOrders     int     `json:"high_value_orders"`
	TotalOrders         int     `json:"total_orders"`
}

// CostKPIs are the scalar metrics of the cost-optimization page.
type CostKPIs struct {
	TotalCost        float64 `json:"total_cost"`
	AvgUnitCost      float64 `json:"avg_unit_cost"`
	AvgOrderCost     float64 `json:"avg_order_cost"`
	PotentialSavings float64 `json:"potential_savings"`
	SavingsPct       float64 `json:"savings_percentage"`
	DelayCostImpact  float64 `json:"delay_cost_impact"`
}
