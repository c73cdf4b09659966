package graphql

import (
	"errors"

	"socialdb/internal/models"
	"socialdb/internal/validation"
)

// Error codes reported under extensions.code.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidState     = "INVALID_STATE"
	CodeIntegrityFailure = "INTEGRITY_FAILURE"
	CodeInternal         = "INTERNAL"
)

// resolverError carries a machine readable code next to the message.
type resolverError struct {
	err    error
	code   string
	fields map[string]string
}

func (e *resolverError) Error() string { return e.err.Error() }
func (e *resolverError) Unwrap() error { return e.err }

func (e *resolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.fields) > 0 {
		ext["fields"] = e.fields
	}
	return ext
}

// CodeFor classifies a service error.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, models.ErrIntegrity):
		return CodeIntegrityFailure
	case errors.Is(err, models.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, models.ErrConflict):
		return CodeConflict
	case errors.Is(err, models.ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, models.ErrInvalidState):
		return CodeInvalidState
	default:
		return CodeInternal
	}
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	re := &resolverError{err: err, code: CodeFor(err)}
	var verr *validation.Error
	if errors.As(err, &verr) {
		re.fields = verr.Fields
	}
	return re
}
