package dtos

import "github.com/google/uuid"

type CreatePropertyRequest struct {
	PropertyID      string    `json:"property_id" validate:"required,min=1"`
	WardID          uuid.UUID `json:"ward_id" validate:"required"`
	Mohalla         string    `json:"mohalla,omitempty"`
	OwnerName       string    `json:"owner_name" validate:"required,min=1"`
	Address         string    `json:"address" validate:"required,min=1"`
	HouseNo         string    `json:"house_no,omitempty"`
	PropertyType    string    `json:"property_type,omitempty"`
	CorporateWardNo string    `json:"corporate_ward_no,omitempty"`
}

type CreateWardRequest struct {
	CorporateName string   `json:"corporate_name" validate:"required,min=1"`
	WardName      string   `json:"ward_name" validate:"required,min=1"`
	Mohallas      []string `json:"mohallas,omitempty" validate:"omitempty,dive,min=1"`
}
