package controllers

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/constants"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type DeliveriesController struct {
	deliveryService *services.DeliveryService
	validate        *validator.Validate
}

func NewDeliveriesController(deliveryService *services.DeliveryService) *DeliveriesController {
	return &DeliveriesController{
		deliveryService: deliveryService,
		validate:        validator.New(),
	}
}

// POST /api/v1/deliveries
//
// Multipart form: text fields of RecordDeliveryRequest plus an
// optional "photo" file part.
func (c *DeliveriesController) RecordDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := userIDFromContext(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(constants.MaxPhotoBytes); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusRequestEntityTooLarge, utils.ErrCodeFileTooLarge,
			"Delivery photo too large", nil, err,
		)
		return
	}

	req := dtos.RecordDeliveryRequest{
		PropertyID:       r.FormValue("property_id"),
		Outcome:          r.FormValue("outcome"),
		ReceiverName:     r.FormValue("receiver_name"),
		ReceiverRelation: r.FormValue("receiver_relation"),
		Latitude:         r.FormValue("latitude"),
		Longitude:        r.FormValue("longitude"),
		Remarks:          r.FormValue("remarks"),
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	var photoData []byte
	var photoContentType string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photoData, err = io.ReadAll(file)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Could not read the delivery photo", nil, err,
			)
			return
		}
		photoContentType = header.Header.Get("Content-Type")
	}

	delivery, err := c.deliveryService.RecordDelivery(r.Context(), staffID, &req, photoContentType, photoData)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, delivery)
}

// GET /api/v1/deliveries
func (c *DeliveriesController) ListDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := repositories.DeliveryFilter{}
	if staffStr := q.Get("staff"); staffStr != "" {
		staffID, err := uuid.Parse(staffStr)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Invalid staff id", nil, err,
			)
			return
		}
		f.StaffID = &staffID
	}
	if propStr := q.Get("property"); propStr != "" {
		propID, err := uuid.Parse(propStr)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Invalid property id", nil, err,
			)
			return
		}
		f.PropertyRef = &propID
	}

	deliveries, err := c.deliveryService.ListDeliveries(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, deliveries)
}
