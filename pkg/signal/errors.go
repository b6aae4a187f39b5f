package signal

// AnalysisError represents a per-file analysis failure. Files that fail
// schema or row-count checks are skipped with one of these; processing of
// the remaining files continues.
type AnalysisError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeMissingColumns   = "SCHEMA_MISSING_COLUMNS"
	ErrCodeInsufficientRows = "INSUFFICIENT_ROWS"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

// NewAnalysisError creates a new analysis error
func NewAnalysisError(file, code, message string, cause error) *AnalysisError {
	return &AnalysisError{
		File:    file,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
