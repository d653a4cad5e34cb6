package domain

import "strings"

// DeliveryStatus is the raw status vocabulary from the dataset.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "Delivered"
	StatusInTransit DeliveryStatus = "In Transit"
	StatusPending   DeliveryStatus = "Pending"
	StatusDelayed   DeliveryStatus = "Delayed"
	StatusUnknown   DeliveryStatus = "Unknown"
)

var statusLabels = map[string]DeliveryStatus{
	"delivered":  StatusDelivered,
	"in transit": StatusInTransit,
	"pending":    StatusPending,
	"delayed":    StatusDelayed,
}

// ParseDeliveryStatus maps a raw status label (case-insensitive) to the
// fixed vocabulary. Values outside the vocabulary become StatusUnknown.
func ParseDeliveryStatus(label string) DeliveryStatus {
	if status, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return status
	}
	return StatusUnknown
}

// PerformanceCategory is the derived delivery-performance classification of
// a record relative to a reference date.
type PerformanceCategory string

const (
	CategoryDelivered PerformanceCategory = "Delivered"
	CategoryOnTrack   PerformanceCategory = "On-Track"
	CategoryOverdue   PerformanceCategory = "Overdue"
	CategoryDelayed   PerformanceCategory = "Delayed"
	CategoryUnknown   PerformanceCategory = "Unknown"
)
