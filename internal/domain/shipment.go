package domain

type ShipmentStatus string

const (
	ShipmentStatusDraft     ShipmentStatus = "draft"
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
	ShipmentStatusArchived  ShipmentStatus = "archived"
)

// ShipmentStatuses lists every status in lifecycle order.
func ShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		ShipmentStatusDraft,
		ShipmentStatusPending,
		ShipmentStatusInTransit,
		ShipmentStatusDelivered,
		ShipmentStatusCancelled,
		ShipmentStatusArchived,
	}
}

const DefaultCountry = "Indonesia"
