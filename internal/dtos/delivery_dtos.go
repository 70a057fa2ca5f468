package dtos

// RecordDeliveryRequest is read from multipart form fields; the photo
// travels alongside it as the "photo" file part.
type RecordDeliveryRequest struct {
	PropertyID       string `json:"property_id" validate:"required,min=1"`
	Outcome          string `json:"outcome" validate:"required,oneof=DELIVERED NOT_FOUND"`
	ReceiverName     string `json:"receiver_name,omitempty"`
	ReceiverRelation string `json:"receiver_relation,omitempty"`
	Latitude         string `json:"latitude,omitempty"`
	Longitude        string `json:"longitude,omitempty"`
	Remarks          string `json:"remarks,omitempty"`
}
