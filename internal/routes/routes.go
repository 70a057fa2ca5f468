package routes

const (
	// Health
	Health = "/health"

	// Auth
	AuthLogin = "/api/v1/auth/login"

	// Admin bulk import + upload history
	PropertiesBulkUpload = "/api/v1/properties/bulk-upload"
	UploadsBase          = "/api/v1/uploads"
	UploadByID           = "/api/v1/uploads/{id}"

	// Property / ward CRUD
	PropertiesBase = "/api/v1/properties"
	WardsBase      = "/api/v1/wards"

	// Staff delivery recording
	DeliveriesBase = "/api/v1/deliveries"

	// Commissioner reports
	ReportsOverview = "/api/v1/reports/overview"
)
