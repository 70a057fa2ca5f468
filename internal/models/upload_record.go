package models

import (
	"time"

	"github.com/google/uuid"
)

type UploadStatus string

const (
	UploadStatusSuccess UploadStatus = "SUCCESS"
	UploadStatusPartial UploadStatus = "PARTIAL"
	UploadStatusFailed  UploadStatus = "FAILED"
)

// UploadRecord is the persisted summary of one bulk-import run.
// Total == Success + Failed + Duplicate always holds; Status is
// derived from the three counters and never stored independently of
// them.
type UploadRecord struct {
	ID         uuid.UUID    `json:"id"`
	Filename   string       `json:"filename"`
	UploadedBy string       `json:"uploaded_by"`
	Total      int          `json:"total"`
	Success    int          `json:"success"`
	Failed     int          `json:"failed"`
	Duplicate  int          `json:"duplicate"`
	Status     UploadStatus `json:"status"`
	Errors     []string     `json:"errors"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DeriveUploadStatus classifies a finished run from its counters.
func DeriveUploadStatus(success, failed, duplicate int) UploadStatus {
	switch {
	case failed == 0 && duplicate == 0:
		return UploadStatusSuccess
	case success == 0:
		return UploadStatusFailed
	default:
		return UploadStatusPartial
	}
}
