package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrEmailExists         = errors.New("email_exists")
	ErrNotFound            = errors.New("not_found")
	ErrFileEmptyOrInvalid  = errors.New("file_empty_or_invalid")
	ErrUnsupportedFileType = errors.New("unsupported_file_type")
	ErrPropertyIDExists    = errors.New("property_id_exists")
	ErrWardExists          = errors.New("ward_exists")
	ErrNoRowsUpdated       = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
