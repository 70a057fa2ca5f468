package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/constants"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/importer"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

// ImportSummary is what a finished run reports back to the caller.
// Errors is carried for the response's top-level error list and is
// not part of the summary object itself.
type ImportSummary struct {
	Total     int                 `json:"total"`
	Success   int                 `json:"success"`
	Failed    int                 `json:"failed"`
	Duplicate int                 `json:"duplicate"`
	Status    models.UploadStatus `json:"status"`
	Errors    []string            `json:"-"`
}

type ImportService struct {
	wardRepo   repositories.WardRepository
	propRepo   repositories.PropertyRepository
	uploadRepo repositories.UploadRecordRepository
	userRepo   repositories.UserRepository
}

func NewImportService(
	wardRepo repositories.WardRepository,
	propRepo repositories.PropertyRepository,
	uploadRepo repositories.UploadRecordRepository,
	userRepo repositories.UserRepository,
) *ImportService {
	return &ImportService{
		wardRepo:   wardRepo,
		propRepo:   propRepo,
		uploadRepo: uploadRepo,
		userRepo:   userRepo,
	}
}

// ImportProperties runs one bulk-import pass over the uploaded file.
//
// Rows are processed strictly in file order, one at a time. Every
// per-row problem is recovered locally so one bad row never aborts
// the rest of the file; only an unusable file (wrong type, or fewer
// than header + one data row) rejects the whole run before any row
// is touched. Each row commits independently: a run that dies midway
// leaves the already-imported rows in place, and re-uploading the
// corrected file classifies them as duplicates.
func (s *ImportService) ImportProperties(
	ctx context.Context,
	filename string,
	contentType string,
	uploadedByID uuid.UUID,
	data []byte,
) (*ImportSummary, error) {
	src, err := importer.NewSource(filename, contentType, data)
	if err != nil {
		return nil, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeUnsupportedFile,
			"Only CSV and XLSX files are supported", err,
		)
	}

	rows, err := src.Rows()
	if err != nil {
		return nil, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeFileEmptyOrInvalid,
			"File is empty or invalid", err,
		)
	}

	summary := &ImportSummary{}
	// propertyIds already inserted in this run, so a repeat inside
	// the same file classifies as a clean duplicate instead of
	// tripping the unique index.
	seen := map[string]bool{}

	for i, row := range rows {
		rowNum := i + 2 // header is file-row 1
		summary.Total++

		propertyID := importer.Field(row, importer.ColPropertyID)
		ownerName := importer.Field(row, importer.ColOwnerName)
		address := importer.Field(row, importer.ColAddress)

		if propertyID == "" || ownerName == "" || address == "" {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: %s", rowNum, constants.MsgMissingRequiredFields))
			continue
		}

		if seen[propertyID] {
			summary.Duplicate++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: Property ID %s already exists", rowNum, propertyID))
			continue
		}

		existing, err := s.propRepo.GetByPropertyID(ctx, propertyID)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}
		if existing != nil {
			summary.Duplicate++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: Property ID %s already exists", rowNum, propertyID))
			continue
		}

		if err := s.importRow(ctx, row, propertyID, ownerName, address); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}

		seen[propertyID] = true
		summary.Success++
	}

	summary.Status = models.DeriveUploadStatus(summary.Success, summary.Failed, summary.Duplicate)

	// The ledger stores a display name, not a foreign key; a record
	// must stay readable even after the admin account is gone.
	uploadedBy := uploadedByID.String()
	if user, err := s.userRepo.GetByID(ctx, uploadedByID); err == nil && user != nil {
		uploadedBy = user.Name
	}

	// A clean run has no row errors; errors is NOT NULL, so the
	// record must carry an empty array rather than a nil slice.
	recErrors := summary.Errors
	if recErrors == nil {
		recErrors = []string{}
	}

	rec := &models.UploadRecord{
		ID:         uuid.New(),
		Filename:   filename,
		UploadedBy: uploadedBy,
		Total:      summary.Total,
		Success:    summary.Success,
		Failed:     summary.Failed,
		Duplicate:  summary.Duplicate,
		Status:     summary.Status,
		Errors:     recErrors,
	}
	if err := s.uploadRepo.Create(ctx, rec); err != nil {
		// Rows are already committed; a lost audit record is better
		// than a 500 after the import has happened.
		utils.Logger.WithError(err).Errorf(
			"Import of %q finished (%d/%d ok) but the upload record could not be written",
			filename, summary.Success, summary.Total,
		)
	}

	return summary, nil
}

// importRow resolves the ward and inserts the property for one
// validated, non-duplicate row.
func (s *ImportService) importRow(
	ctx context.Context,
	row []string,
	propertyID, ownerName, address string,
) error {
	corporateName := importer.Field(row, importer.ColCorporateName)
	wardName := importer.Field(row, importer.ColWardName)
	mohalla := importer.Field(row, importer.ColMohalla)

	ward, err := s.wardRepo.GetByCorporateAndName(ctx, corporateName, wardName)
	if err != nil {
		return err
	}
	if ward == nil {
		// Mohallas must stay non-nil: pgx encodes a nil slice as SQL
		// NULL and the column is NOT NULL.
		ward = &models.Ward{
			ID:            uuid.New(),
			CorporateName: corporateName,
			WardName:      wardName,
			Mohallas:      []string{},
		}
		if mohalla != "" {
			ward.Mohallas = []string{mohalla}
		}
		if err := s.wardRepo.Create(ctx, ward); err != nil {
			return err
		}
	} else if mohalla != "" && !ward.HasMohalla(mohalla) {
		if err := s.wardRepo.AppendMohalla(ctx, ward.ID, mohalla); err != nil {
			return err
		}
	}

	prop := &models.Property{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		WardID:          ward.ID,
		Mohalla:         mohalla,
		OwnerName:       ownerName,
		Address:         address,
		HouseNo:         importer.Field(row, importer.ColHouseNo),
		PropertyType:    importer.Field(row, importer.ColPropertyType),
		CorporateWardNo: importer.Field(row, importer.ColCorporateWardNo),
		DeliveryStatus:  models.DeliveryStatusPending,
	}
	return s.propRepo.Create(ctx, prop)
}

/* ------------------------------------------------------------------
   Upload-ledger operations
------------------------------------------------------------------ */

func (s *ImportService) ListUploads(ctx context.Context) ([]*models.UploadRecord, error) {
	return s.uploadRepo.ListRecent(ctx, constants.UploadHistoryLimit)
}

func (s *ImportService) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	err := s.uploadRepo.Delete(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Upload record not found", err)
	}
	return err
}

// TrimUploadHistory is run nightly by the cron wiring in cmd/server.
func (s *ImportService) TrimUploadHistory(ctx context.Context) {
	n, err := s.uploadRepo.TrimOlderThanNewest(ctx, constants.UploadRetentionKeep)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to trim upload history")
		return
	}
	if n > 0 {
		utils.Logger.Infof("Trimmed %d old upload records", n)
	}
}
