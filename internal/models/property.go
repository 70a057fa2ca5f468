package models

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusNotFound  DeliveryStatus = "NOT_FOUND"
)

// Property is a single billable unit, keyed by the externally
// supplied PropertyID. DeliveryStatus changes only when a Delivery is
// recorded against the property.
type Property struct {
	ID               uuid.UUID      `json:"id"`
	PropertyID       string         `json:"property_id"`
	WardID           uuid.UUID      `json:"ward_id"`
	Mohalla          string         `json:"mohalla"`
	OwnerName        string         `json:"owner_name"`
	Address          string         `json:"address"`
	HouseNo          string         `json:"house_no"`
	PropertyType     string         `json:"property_type"`
	CorporateWardNo  string         `json:"corporate_ward_no"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status"`
	LastDeliveryID   *uuid.UUID     `json:"last_delivery_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
