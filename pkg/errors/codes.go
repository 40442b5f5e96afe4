package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeConflict        ErrorCode = "COMMON_004"
	ErrCodeTimeout         ErrorCode = "COMMON_005"
	ErrCodeValidation      ErrorCode = "COMMON_006"
	ErrCodeDatabaseError   ErrorCode = "COMMON_007"
	ErrCodeCacheError      ErrorCode = "COMMON_008"
	ErrCodeExternalService ErrorCode = "COMMON_009"
	ErrCodeSerialization   ErrorCode = "COMMON_010"
)

// PM scheduling engine error codes.
const (
	// ErrCodeInvalidFrequency marks a template whose frequency unit is not one
	// of the supported enum values. The template is skipped, never defaulted.
	ErrCodeInvalidFrequency ErrorCode = "PM_001"

	// ErrCodeStorageReadFailure marks a failed load of templates, equipment or
	// open work orders. Fatal for the whole scope run.
	ErrCodeStorageReadFailure ErrorCode = "PM_002"

	// ErrCodeStorageWriteFailure marks a failed persist of a single draft.
	// Non-fatal; the rest of the batch proceeds.
	ErrCodeStorageWriteFailure ErrorCode = "PM_003"

	// ErrCodeNotificationFailure marks a failed notification publish.
	// Always non-fatal, logged only.
	ErrCodeNotificationFailure ErrorCode = "PM_004"

	// ErrCodeWorkOrderNotFound marks a lookup miss for a work order.
	ErrCodeWorkOrderNotFound ErrorCode = "PM_005"

	// ErrCodeDuplicateOpenWorkOrder marks a violation of the at-most-one-open
	// invariant, typically surfaced by the storage layer's unique constraint.
	ErrCodeDuplicateOpenWorkOrder ErrorCode = "PM_006"

	// ErrCodeEquipmentNotFound marks a lookup miss for an equipment asset.
	ErrCodeEquipmentNotFound ErrorCode = "PM_007"

	// ErrCodeTemplateNotFound marks a lookup miss for a PM template.
	ErrCodeTemplateNotFound ErrorCode = "PM_008"

	// ErrCodeScopeLocked marks a scope whose scheduling run is already in
	// progress under the distributed run lock.
	ErrCodeScopeLocked ErrorCode = "PM_009"
)

// Aliases kept for readability at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// HTTPStatus maps an ErrorCode to the HTTP status code emitted by the API
// layer. Codes without an explicit mapping fall back to 500.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeInvalidFrequency:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeWorkOrderNotFound, ErrCodeEquipmentNotFound, ErrCodeTemplateNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeDuplicateOpenWorkOrder, ErrCodeScopeLocked:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
