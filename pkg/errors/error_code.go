package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidStockCode     ErrorCode = 103
	ErrCodeInvalidTradeDate     ErrorCode = 104
	ErrCodeMissingColumn        ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeFileNotFound          ErrorCode = 203

	// Chart errors (300-399)
	ErrCodeChartEncodeFailed ErrorCode = 300
	ErrCodeChartWriteFailed  ErrorCode = 301
)
