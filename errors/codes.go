package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003

	// Ingestion
	ErrorCode_INVALID_PAYLOAD      ErrorCode = 2000
	ErrorCode_UNRECOGNIZED_PAYLOAD ErrorCode = 2001
	ErrorCode_MISSING_FIELDS       ErrorCode = 2002
	ErrorCode_PROCESSING_FAILED    ErrorCode = 2003

	// Integrations
	ErrorCode_INTEGRATION_FATHOM_FAILED ErrorCode = 3000
	ErrorCode_INTEGRATION_LLM_FAILED    ErrorCode = 3001
	ErrorCode_MISSING_API_KEY           ErrorCode = 3002

	// Database
	ErrorCode_DB_CONNECTION_FAILED    ErrorCode = 4000
	ErrorCode_DB_QUERY_FAILED         ErrorCode = 4001
	ErrorCode_DB_CONSTRAINT_VIOLATION ErrorCode = 4002
)

// String returns a readable name for the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_UNRECOGNIZED_PAYLOAD:
		return "UNRECOGNIZED_PAYLOAD"
	case ErrorCode_MISSING_FIELDS:
		return "MISSING_FIELDS"
	case ErrorCode_PROCESSING_FAILED:
		return "PROCESSING_FAILED"
	case ErrorCode_INTEGRATION_FATHOM_FAILED:
		return "INTEGRATION_FATHOM_FAILED"
	case ErrorCode_INTEGRATION_LLM_FAILED:
		return "INTEGRATION_LLM_FAILED"
	case ErrorCode_MISSING_API_KEY:
		return "MISSING_API_KEY"
	case ErrorCode_DB_CONNECTION_FAILED:
		return "DB_CONNECTION_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	case ErrorCode_DB_CONSTRAINT_VIOLATION:
		return "DB_CONSTRAINT_VIOLATION"
	default:
		return "UNKNOWN"
	}
}
