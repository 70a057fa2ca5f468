package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/constants"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type ImportController struct {
	importService *services.ImportService
}

func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// bulkUploadResponse matches what the admin UI renders: headline
// message, counter summary, and the per-row error list when present.
type bulkUploadResponse struct {
	Message string                  `json:"message"`
	Summary *services.ImportSummary `json:"summary"`
	Errors  []string                `json:"errors,omitempty"`
}

// POST /api/v1/properties/bulk-upload
func (c *ImportController) BulkUploadHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "BulkUploadHandler")

	userID, err := userIDFromContext(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxImportFileBytes)
	if err := r.ParseMultipartForm(constants.MaxImportFileBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.RespondErrorWithCode(
				w, http.StatusRequestEntityTooLarge, utils.ErrCodeFileTooLarge,
				"File exceeds the 60 MiB upload limit", nil, err,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Malformed multipart request", nil, err,
		)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeFileMissing,
			"No file attached", nil, err,
		)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Could not read the uploaded file", nil, err,
		)
		return
	}

	logger.Infof("Importing %q (%d bytes)", header.Filename, len(data))

	summary, err := c.importService.ImportProperties(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		userID,
		data,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bulkUploadResponse{
		Message: "Import finished",
		Summary: summary,
		Errors:  summary.Errors,
	})
}

// GET /api/v1/uploads
func (c *ImportController) ListUploadsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := c.importService.ListUploads(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, records)
}

// DELETE /api/v1/uploads/{id}
func (c *ImportController) DeleteUploadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid upload record id", nil, err,
		)
		return
	}

	if err := c.importService.DeleteUpload(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Upload record deleted"})
}
