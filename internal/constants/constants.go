package constants

const (
	// Bulk import
	MaxImportFileBytes   int64 = 60 << 20 // 60 MiB upload ceiling
	UploadHistoryLimit         = 50
	UploadRetentionKeep        = 500

	// Delivery photos
	MaxPhotoBytes  int64 = 10 << 20
	ThumbnailWidth       = 320

	// Required bulk-file fields checked per row
	MsgMissingRequiredFields = "Missing required fields"
)
