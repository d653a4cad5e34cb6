package domain

import "time"

// Canonical dataset column names after header trimming.
const (
	ColSupplier         = "Supplier"
	ColProduct          = "Product"
	ColWarehouse        = "Warehouse Location"
	ColLogisticsPartner = "Logistics Partner"
	ColShippingMethod   = "Shipping Method"
	ColUnitPrice        = "Unit Price"
	ColQuantity         = "Quantity"
	ColTotalCost        = "Total Cost"
	ColDeliveryDate     = "Delivery Date"
	ColDeliveryStatus   = "Delivery Status"
)

// Record is one shipment/order observation. Records are immutable once
// loaded; engines only derive new values alongside them. Numeric and date
// fields are nil when the source value failed to coerce.
type Record struct {
	Supplier         string         `json:"supplier"`
	Product          string         `json:"product"`
	Warehouse        string         `json:"warehouse"`
	LogisticsPartner string         `json:"logistics_partner"`
	ShippingMethod   string         `json:"shipping_method"`
	UnitPrice        *float64       `json:"unit_price"`
	Quantity         *float64       `json:"quantity"`
	TotalCost        *float64       `json:"total_cost"`
	DeliveryDate     *time.Time     `json:"delivery_date"`
	Status           DeliveryStatus `json:"delivery_status"`
}

// Cost returns the stored total cost. The stored value is authoritative and
// never reconciled against unit price x quantity.
func (r Record) Cost() (float64, bool) {
	if r.TotalCost == nil {
		return 0, false
	}
	return *r.TotalCost, true
}

// Qty returns the order quantity when present.
func (r Record) Qty() (float64, bool) {
	if r.Quantity == nil {
		return 0, false
	}
	return *r.Quantity, true
}

// Price returns the unit price when present.
func (r Record) Price() (float64, bool) {
	if r.UnitPrice == nil {
		return 0, false
	}
	return *r.UnitPrice, true
}
