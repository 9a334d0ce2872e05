package entities

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"localereg/internal/domain"
)

// Bundle is the complete set of namespace tables for one locale.
// It is never mutated after Assemble returns it.
type Bundle struct {
	locale     string
	namespaces []string
	tables     map[string]Table
}

// Assemble validates tables and combines them into a Bundle for locale.
//
// Every table must be a flat mapping of non-empty string keys to string
// values, and no namespace may appear twice. The inputs are not modified.
func Assemble(locale string, tables []RawTable) (*Bundle, error) {
	if strings.TrimSpace(locale) == "" {
		return nil, &domain.AssemblyError{Locale: locale, Err: domain.ErrInvalidLocale}
	}

	b := &Bundle{
		locale:     locale,
		namespaces: make([]string, 0, len(tables)),
		tables:     make(map[string]Table, len(tables)),
	}
	for _, raw := range tables {
		if raw.Namespace == "" {
			return nil, &domain.AssemblyError{Locale: locale, Err: fmt.Errorf("%w: empty namespace id", domain.ErrMalformedTable)}
		}
		if _, exists := b.tables[raw.Namespace]; exists {
			return nil, &domain.AssemblyError{Locale: locale, Namespace: raw.Namespace, Err: domain.ErrDuplicateNamespace}
		}
		entries, err := flatStrings(raw.Entries)
		if err != nil {
			err.Locale = locale
			err.Namespace = raw.Namespace
			return nil, err
		}
		b.namespaces = append(b.namespaces, raw.Namespace)
		b.tables[raw.Namespace] = Table{entries: entries}
	}
	return b, nil
}

func flatStrings(in map[string]any) (map[string]string, *domain.AssemblyError) {
	out := make(map[string]string, len(in))
	for _, key := range slices.Sorted(maps.Keys(in)) {
		value := in[key]
		if key == "" {
			return nil, &domain.AssemblyError{Err: fmt.Errorf("%w: empty key", domain.ErrMalformedTable)}
		}
		s, ok := value.(string)
		if !ok {
			return nil, &domain.AssemblyError{Key: key, Err: fmt.Errorf("%w: value is %s, want string", domain.ErrMalformedTable, kindOf(value))}
		}
		out[key] = s
	}
	return out, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Locale returns the locale identifier the bundle was assembled for.
func (b *Bundle) Locale() string { return b.locale }

// Namespaces returns the namespace ids in assembly order.
func (b *Bundle) Namespaces() []string {
	return append([]string(nil), b.namespaces...)
}

// Table returns the table registered for namespace.
func (b *Bundle) Table(namespace string) (Table, bool) {
	t, ok := b.tables[namespace]
	return t, ok
}

// HasNamespace reports whether the bundle declares namespace.
func (b *Bundle) HasNamespace(namespace string) bool {
	_, ok := b.tables[namespace]
	return ok
}

// Lookup returns the value stored under namespace/key in this bundle only.
func (b *Bundle) Lookup(namespace, key string) (string, bool) {
	t, ok := b.tables[namespace]
	if !ok {
		return "", false
	}
	return t.Get(key)
}
