package errors

// ErrorCode is a stable machine-readable identifier carried in API error
// payloads. Codes never change once clients depend on them.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	// General
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED ErrorCode = "PERMISSION_DENIED"
	ErrorCode_UNAUTHENTICATED   ErrorCode = "UNAUTHENTICATED"
	ErrorCode_INVALID_PAYLOAD   ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_HTTP_OK           ErrorCode = "OK"

	// Authentication
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = "AUTH_INVALID_REFRESH_TOKEN"
	ErrorCode_AUTH_OAUTH_FAILED          ErrorCode = "AUTH_OAUTH_FAILED"

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = "MEETING_NOT_FOUND"
	ErrorCode_MEETING_FULL          ErrorCode = "MEETING_FULL"
	ErrorCode_MEETING_ENDED         ErrorCode = "MEETING_ENDED"
	ErrorCode_MEETING_ACCESS_DENIED ErrorCode = "MEETING_ACCESS_DENIED"

	// Processing pipeline
	ErrorCode_PROCESSING_FAILED ErrorCode = "PROCESSING_FAILED"

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
)
