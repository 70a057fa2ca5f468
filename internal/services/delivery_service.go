package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/storage"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type DeliveryService struct {
	deliveryRepo repositories.DeliveryRepository
	propRepo     repositories.PropertyRepository
	photos       storage.PhotoStore
}

func NewDeliveryService(
	deliveryRepo repositories.DeliveryRepository,
	propRepo repositories.PropertyRepository,
	photos storage.PhotoStore,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		propRepo:     propRepo,
		photos:       photos,
	}
}

// RecordDelivery stores one field-staff delivery attempt and flips
// the property's delivery status. This is the only path through which
// a property ever leaves PENDING.
func (s *DeliveryService) RecordDelivery(
	ctx context.Context,
	staffID uuid.UUID,
	req *dtos.RecordDeliveryRequest,
	photoContentType string,
	photoData []byte,
) (*models.Delivery, error) {
	prop, err := s.propRepo.GetByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NewAppError(
			http.StatusNotFound, utils.ErrCodeNotFound,
			"No property with that property ID", nil,
		)
	}

	var photoURL, thumbURL string
	if len(photoData) > 0 {
		photoURL, thumbURL, err = s.photos.SavePhoto(ctx, photoContentType, photoData)
		if err != nil {
			return nil, utils.NewAppError(
				http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Could not store the delivery photo", err,
			)
		}
	}

	d := &models.Delivery{
		ID:               uuid.New(),
		PropertyRef:      prop.ID,
		StaffID:          staffID,
		Outcome:          models.DeliveryOutcome(req.Outcome),
		ReceiverName:     req.ReceiverName,
		ReceiverRelation: req.ReceiverRelation,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		PhotoURL:         photoURL,
		ThumbnailURL:     thumbURL,
		Remarks:          req.Remarks,
	}
	if err := s.deliveryRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	if err := s.propRepo.SetDeliveryOutcome(ctx, prop.ID, d.ID, d.StatusAfter()); err != nil {
		// Delivery is recorded but the property still shows the old
		// status; surface loudly so an admin can reconcile.
		utils.Logger.WithError(err).Errorf(
			"Delivery %s saved but property %s status was not updated", d.ID, prop.PropertyID,
		)
		return nil, err
	}

	return d, nil
}

func (s *DeliveryService) ListDeliveries(ctx context.Context, f repositories.DeliveryFilter) ([]*models.Delivery, error) {
	return s.deliveryRepo.ListDeliveries(ctx, f)
}
