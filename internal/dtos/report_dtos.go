package dtos

import "github.com/google/uuid"

type WardReportRow struct {
	WardID        uuid.UUID `json:"ward_id"`
	CorporateName string    `json:"corporate_name"`
	WardName      string    `json:"ward_name"`
	Total         int       `json:"total"`
	Delivered     int       `json:"delivered"`
	Pending       int       `json:"pending"`
	NotFound      int       `json:"not_found"`
}

type OverviewResponse struct {
	Total     int             `json:"total"`
	Delivered int             `json:"delivered"`
	Pending   int             `json:"pending"`
	NotFound  int             `json:"not_found"`
	Wards     []WardReportRow `json:"wards"`
}
