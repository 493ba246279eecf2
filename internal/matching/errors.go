package matching

import "fmt"

// ValidationError indicates blank or missing caller input. The caller should
// re-prompt the user; the oracle is never contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// OracleError indicates the upstream inference call failed, timed out, or
// returned a payload failing schema validation. Never retried automatically,
// and no partial results accompany it.
type OracleError struct {
	Message string
	Cause   error
}

func (e *OracleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle error: %s", e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// DirectoryError indicates the user directory could not serve a corpus or
// connection fetch. From the caller's perspective it propagates identically
// to OracleError: matching is temporarily unavailable.
type DirectoryError struct {
	Message string
	Cause   error
}

func (e *DirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("directory error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("directory error: %s", e.Message)
}

func (e *DirectoryError) Unwrap() error {
	return e.Cause
}
