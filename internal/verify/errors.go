package verify

import (
	"errors"
	"fmt"

	"github.com/tensorhost/dialect/internal/diag"
)

// Verification error kinds. All are non-fatal and scoped to the one
// instance under verification; the caller decides whether to keep
// processing the rest of the program.
const (
	ErrCodeUnknownOperation       = "UNKNOWN_OPERATION"
	ErrCodeArityMismatch          = "ARITY_MISMATCH"
	ErrCodeKindMismatch           = "KIND_MISMATCH"
	ErrCodeTypeMismatch           = "TYPE_MISMATCH"
	ErrCodeMissingChainBinding    = "MISSING_CHAIN_BINDING"
	ErrCodeAttributeArityMismatch = "ATTRIBUTE_ARITY_MISMATCH"
	ErrCodeMissingAttribute       = "MISSING_ATTRIBUTE"
	ErrCodeUnknownAttribute       = "UNKNOWN_ATTRIBUTE"
	ErrCodeUndefinedValue         = "UNDEFINED_VALUE"
	ErrCodeRedefinedValue         = "REDEFINED_VALUE"
)

// Error is one structural invariant violation found in an operation
// instance.
type Error struct {
	// Kind identifies the violated invariant.
	Kind string

	// Mnemonic names the operation under verification, when known.
	Mnemonic string

	// Message is a human-readable description with expected vs actual
	// context.
	Message string

	// Loc is the source position of the instance, when it was parsed
	// from text.
	Loc diag.Location
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Mnemonic != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Mnemonic, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Diagnostic converts the error to its decoded diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Loc: e.Loc, Message: e.Message}
}

// IsKind reports whether err is a verification error of the given
// kind. Uses errors.As to handle wrapped errors.
func IsKind(err error, kind string) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// HasKind reports whether any error in the slice has the given kind.
func HasKind(errs []*Error, kind string) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
