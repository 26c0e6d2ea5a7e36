package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is the reason when the points document cannot yield a forecast URL.
	ErrSourceUnavailable = errors.New("forecast source unavailable")
	// ErrDocumentUnavailable is the reason when the forecast document is null or has no properties.
	ErrDocumentUnavailable = errors.New("forecast document unavailable")
	// ErrEmptyPeriods is the reason when no usable forecast periods remain.
	ErrEmptyPeriods = errors.New("forecast periods empty")
	// ErrTransport is the reason when the fetcher itself failed.
	ErrTransport = errors.New("forecast transport failure")
)

// NormalizationError is the single error type returned by NormalizeForecast.
// Reason is one of the Err* sentinels above; Err carries the underlying cause, if any.
type NormalizationError struct {
	Reason  error
	Message string
	Err     error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NormalizationError) Unwrap() []error {
	errs := []error{e.Reason}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newNormalizationError(reason error, msg string, cause error) *NormalizationError {
	return &NormalizationError{Reason: reason, Message: msg, Err: cause}
}

// FieldParseFailure records a non-fatal parse failure for one period field.
type FieldParseFailure struct {
	Period string
	Field  string
	Value  any
	Err    error
}

func (f FieldParseFailure) Error() string {
	return fmt.Sprintf("period %q: could not parse %s %v: %v", f.Period, f.Field, f.Value, f.Err)
}

// reasonLabel maps a failure to a short metrics label.
func reasonLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrDocumentUnavailable):
		return "document_unavailable"
	case errors.Is(err, ErrEmptyPeriods):
		return "empty_periods"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}
