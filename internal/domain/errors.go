package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrInvalidLocale      = errors.New("invalid locale identifier")
	ErrDuplicateNamespace = errors.New("duplicate namespace")
	ErrMalformedTable     = errors.New("malformed namespace table")
	ErrDuplicateLocale    = errors.New("duplicate locale")
	ErrNoFallbackLocale   = errors.New("fallback locale has no bundle")
	ErrNamespaceMismatch  = errors.New("namespace set differs from fallback locale")
	ErrMissingTranslation = errors.New("missing translation")
	ErrMissingNamespace   = errors.New("missing namespace")
	ErrTableNotFound      = errors.New("namespace table not found")
	ErrNotLoaded          = errors.New("registry not loaded")
)

// AssemblyError reports a defect found while assembling one locale bundle.
// Namespace and Key are empty when the defect is not tied to them.
type AssemblyError struct {
	Locale    string
	Namespace string
	Key       string
	Err       error
}

func (e *AssemblyError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("assemble %s: namespace %q key %q: %v", e.Locale, e.Namespace, e.Key, e.Err)
	case e.Namespace != "":
		return fmt.Sprintf("assemble %s: namespace %q: %v", e.Locale, e.Namespace, e.Err)
	default:
		return fmt.Sprintf("assemble %s: %v", e.Locale, e.Err)
	}
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// MissingTranslationError carries the exact coordinate that could not be
// resolved, neither in the requested locale nor in the fallback locale.
type MissingTranslationError struct {
	Locale    string
	Namespace string
	Key       string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("%s: locale=%s namespace=%s key=%s", ErrMissingTranslation, e.Locale, e.Namespace, e.Key)
}

func (e *MissingTranslationError) Is(target error) bool {
	return target == ErrMissingTranslation
}

// Code maps an error to a stable snake_case code, or "" for unknown errors.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidLocale):
		return "invalid_locale"
	case errors.Is(err, ErrDuplicateNamespace):
		return "duplicate_namespace"
	case errors.Is(err, ErrMalformedTable):
		return "malformed_table"
	case errors.Is(err, ErrDuplicateLocale):
		return "duplicate_locale"
	case errors.Is(err, ErrNoFallbackLocale):
		return "no_fallback_locale"
	case errors.Is(err, ErrNamespaceMismatch):
		return "namespace_mismatch"
	case errors.Is(err, ErrMissingTranslation):
		return "missing_translation"
	case errors.Is(err, ErrMissingNamespace):
		return "missing_namespace"
	case errors.Is(err, ErrTableNotFound):
		return "table_not_found"
	case errors.Is(err, ErrNotLoaded):
		return "not_loaded"
	default:
		return ""
	}
}
