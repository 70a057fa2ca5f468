package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type PropertiesController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertiesController(propertyService *services.PropertyService) *PropertiesController {
	return &PropertiesController{
		propertyService: propertyService,
		validate:        validator.New(),
	}
}

// GET /api/v1/properties
func (c *PropertiesController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := repositories.PropertyFilter{
		Status:  models.DeliveryStatus(q.Get("status")),
		Mohalla: q.Get("mohalla"),
		Search:  q.Get("search"),
	}
	if wardStr := q.Get("ward"); wardStr != "" {
		wardID, err := uuid.Parse(wardStr)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Invalid ward id", nil, err,
			)
			return
		}
		f.WardID = &wardID
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			f.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			f.Offset = offset
		}
	}

	props, err := c.propertyService.ListProperties(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// POST /api/v1/properties
func (c *PropertiesController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	prop, err := c.propertyService.CreateProperty(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// GET /api/v1/wards
func (c *PropertiesController) ListWardsHandler(w http.ResponseWriter, r *http.Request) {
	wards, err := c.propertyService.ListWards(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wards)
}

// POST /api/v1/wards
func (c *PropertiesController) CreateWardHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateWardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	ward, err := c.propertyService.CreateWard(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, ward)
}
