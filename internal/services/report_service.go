package services

import (
	"context"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
)

// ReportService assembles the commissioner's aggregate view. Counts
// are computed from the live stores on every call; at this system's
// scale there is nothing to cache.
type ReportService struct {
	propRepo repositories.PropertyRepository
	wardRepo repositories.WardRepository
}

func NewReportService(
	propRepo repositories.PropertyRepository,
	wardRepo repositories.WardRepository,
) *ReportService {
	return &ReportService{propRepo: propRepo, wardRepo: wardRepo}
}

func (s *ReportService) Overview(ctx context.Context) (*dtos.OverviewResponse, error) {
	byStatus, err := s.propRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dtos.OverviewResponse{
		Delivered: byStatus[models.DeliveryStatusDelivered],
		Pending:   byStatus[models.DeliveryStatusPending],
		NotFound:  byStatus[models.DeliveryStatusNotFound],
	}
	resp.Total = resp.Delivered + resp.Pending + resp.NotFound

	byWard, err := s.propRepo.CountByWardAndStatus(ctx)
	if err != nil {
		return nil, err
	}
	wards, err := s.wardRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range wards {
		counts := byWard[w.ID]
		row := dtos.WardReportRow{
			WardID:        w.ID,
			CorporateName: w.CorporateName,
			WardName:      w.WardName,
			Delivered:     counts[models.DeliveryStatusDelivered],
			Pending:       counts[models.DeliveryStatusPending],
			NotFound:      counts[models.DeliveryStatusNotFound],
		}
		row.Total = row.Delivered + row.Pending + row.NotFound
		resp.Wards = append(resp.Wards, row)
	}

	return resp, nil
}
