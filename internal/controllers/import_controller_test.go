package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/middleware"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

func authedRequest(t *testing.T, method, target string, body *bytes.Buffer) *http.Request {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, uuid.New())
	return req.WithContext(ctx)
}

func TestBulkUploadMalformedMultipart(t *testing.T) {
	c := NewImportController(nil)

	body := bytes.NewBufferString("this is not a multipart body")
	req := authedRequest(t, http.MethodPost, "/api/v1/properties/bulk-upload", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")

	rec := httptest.NewRecorder()
	c.BulkUploadHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
	assert.Equal(t, utils.ErrCodeInvalidPayload, errBody.Code)
}

func TestBulkUploadMissingFilePart(t *testing.T) {
	c := NewImportController(nil)

	// A well-formed multipart body without a "file" part.
	body := &bytes.Buffer{}
	body.WriteString("--deadbeef\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"note\"\r\n\r\n")
	body.WriteString("hello\r\n")
	body.WriteString("--deadbeef--\r\n")

	req := authedRequest(t, http.MethodPost, "/api/v1/properties/bulk-upload", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")

	rec := httptest.NewRecorder()
	c.BulkUploadHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
	assert.Equal(t, utils.ErrCodeFileMissing, errBody.Code)
}

func TestBulkUploadResponseShape(t *testing.T) {
	resp := bulkUploadResponse{
		Message: "Import finished",
		Summary: &services.ImportSummary{
			Total:     2,
			Success:   1,
			Failed:    1,
			Duplicate: 0,
			Status:    models.UploadStatusPartial,
			Errors:    []string{"Row 3: Missing required fields"},
		},
		Errors: []string{"Row 3: Missing required fields"},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// The row errors appear once, beside the summary, not inside it.
	require.Contains(t, decoded, "errors")
	var summaryFields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["summary"], &summaryFields))
	assert.NotContains(t, summaryFields, "errors")
	assert.True(t, strings.Contains(string(decoded["errors"]), "Row 3"))
}
