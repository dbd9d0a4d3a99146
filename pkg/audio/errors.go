package audio

// ProcessingError represents a per-utterance failure anywhere in the
// extraction pipeline. The Code identifies the failing stage so callers
// can apply their skip/halt policy without string matching.
type ProcessingError struct {
	Key     string `json:"key,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error codes for per-utterance failures
const (
	ErrCodeDecode          = "DECODE_FAILED"
	ErrCodeUnsupportedRate = "UNSUPPORTED_RATE"
	ErrCodeDegenerateInput = "DEGENERATE_INPUT"
	ErrCodeSource          = "SOURCE_FAILED"
)

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// NewProcessingError creates a new processing error
func NewProcessingError(key, code, message string, cause error) *ProcessingError {
	return &ProcessingError{
		Key:     key,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
