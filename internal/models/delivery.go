package models

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryOutcome string

const (
	DeliveryOutcomeDelivered DeliveryOutcome = "DELIVERED"
	DeliveryOutcomeNotFound  DeliveryOutcome = "NOT_FOUND"
)

// Delivery is one field-staff attempt at handing a bill to a
// property's occupant: who received it, where the staff member stood,
// and the proof photo.
type Delivery struct {
	ID               uuid.UUID       `json:"id"`
	PropertyRef      uuid.UUID       `json:"property_ref"`
	StaffID          uuid.UUID       `json:"staff_id"`
	Outcome          DeliveryOutcome `json:"outcome"`
	ReceiverName     string          `json:"receiver_name"`
	ReceiverRelation string          `json:"receiver_relation"`
	Latitude         string          `json:"latitude"`
	Longitude        string          `json:"longitude"`
	PhotoURL         string          `json:"photo_url"`
	ThumbnailURL     string          `json:"thumbnail_url"`
	Remarks          string          `json:"remarks"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StatusAfter maps the delivery outcome onto the property's status.
func (d *Delivery) StatusAfter() DeliveryStatus {
	if d.Outcome == DeliveryOutcomeNotFound {
		return DeliveryStatusNotFound
	}
	return DeliveryStatusDelivered
}
