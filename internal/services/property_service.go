package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

// PropertyService covers the manual admin paths: single property
// entry and ward CRUD. Bulk entry lives in ImportService.
type PropertyService struct {
	propRepo repositories.PropertyRepository
	wardRepo repositories.WardRepository
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	wardRepo repositories.WardRepository,
) *PropertyService {
	return &PropertyService{propRepo: propRepo, wardRepo: wardRepo}
}

func (s *PropertyService) CreateProperty(ctx context.Context, req *dtos.CreatePropertyRequest) (*models.Property, error) {
	existing, err := s.propRepo.GetByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAppError(
			http.StatusConflict, utils.ErrCodeConflict,
			"A property with that property ID already exists", utils.ErrPropertyIDExists,
		)
	}

	ward, err := s.wardRepo.GetByID(ctx, req.WardID)
	if err != nil {
		return nil, err
	}
	if ward == nil {
		return nil, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Unknown ward", nil,
		)
	}
	if req.Mohalla != "" && !ward.HasMohalla(req.Mohalla) {
		if err := s.wardRepo.AppendMohalla(ctx, ward.ID, req.Mohalla); err != nil {
			return nil, err
		}
	}

	p := &models.Property{
		ID:              uuid.New(),
		PropertyID:      req.PropertyID,
		WardID:          ward.ID,
		Mohalla:         req.Mohalla,
		OwnerName:       req.OwnerName,
		Address:         req.Address,
		HouseNo:         req.HouseNo,
		PropertyType:    req.PropertyType,
		CorporateWardNo: req.CorporateWardNo,
		DeliveryStatus:  models.DeliveryStatusPending,
	}
	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, error) {
	return s.propRepo.ListProperties(ctx, f)
}

func (s *PropertyService) CreateWard(ctx context.Context, req *dtos.CreateWardRequest) (*models.Ward, error) {
	existing, err := s.wardRepo.GetByCorporateAndName(ctx, req.CorporateName, req.WardName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAppError(
			http.StatusConflict, utils.ErrCodeConflict,
			"That ward already exists", utils.ErrWardExists,
		)
	}

	mohallas := req.Mohallas
	if mohallas == nil {
		mohallas = []string{} // nil would INSERT as NULL into a NOT NULL column
	}
	w := &models.Ward{
		ID:            uuid.New(),
		CorporateName: req.CorporateName,
		WardName:      req.WardName,
		Mohallas:      mohallas,
	}
	if err := s.wardRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *PropertyService) ListWards(ctx context.Context) ([]*models.Ward, error) {
	return s.wardRepo.ListAll(ctx)
}
