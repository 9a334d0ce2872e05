package entities

import (
	"errors"
	"fmt"
	"slices"

	"localereg/internal/domain"
)

// Registry maps locale identifiers to their bundles and resolves lookups
// with fallback to a designated locale. It is immutable; reloading builds a
// new Registry.
type Registry struct {
	fallback string
	locales  []string
	bundles  map[string]*Bundle
}

// NewRegistry builds a Registry from bundles. A bundle for fallback is
// required, and every other bundle must declare exactly the fallback's
// namespaces.
func NewRegistry(fallback string, bundles ...*Bundle) (*Registry, error) {
	r := &Registry{
		fallback: fallback,
		bundles:  make(map[string]*Bundle, len(bundles)),
	}
	for _, b := range bundles {
		if b == nil {
			continue
		}
		if _, exists := r.bundles[b.locale]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateLocale, b.locale)
		}
		r.bundles[b.locale] = b
		r.locales = append(r.locales, b.locale)
	}

	base, ok := r.bundles[fallback]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoFallbackLocale, fallback)
	}

	var defects []error
	for _, locale := range r.locales {
		if locale == fallback {
			continue
		}
		defects = append(defects, namespaceDefects(base, r.bundles[locale])...)
	}
	if len(defects) > 0 {
		return nil, errors.Join(defects...)
	}
	return r, nil
}

func namespaceDefects(base, b *Bundle) []error {
	var out []error
	for _, ns := range base.namespaces {
		if !b.HasNamespace(ns) {
			out = append(out, fmt.Errorf("%w: locale %s lacks namespace %q", domain.ErrNamespaceMismatch, b.locale, ns))
		}
	}
	for _, ns := range b.namespaces {
		if !base.HasNamespace(ns) {
			out = append(out, fmt.Errorf("%w: locale %s declares unknown namespace %q", domain.ErrNamespaceMismatch, b.locale, ns))
		}
	}
	return out
}

// Fallback returns the fallback locale.
func (r *Registry) Fallback() string { return r.fallback }

// Locales returns the configured locales in construction order.
func (r *Registry) Locales() []string {
	return slices.Clone(r.locales)
}

// Bundle returns the bundle configured for locale.
func (r *Registry) Bundle(locale string) (*Bundle, bool) {
	b, ok := r.bundles[locale]
	return b, ok
}

// Namespaces returns the namespaces declared by the fallback locale.
func (r *Registry) Namespaces() []string {
	return r.bundles[r.fallback].Namespaces()
}

// Lookup resolves namespace/key for locale. If locale is not configured or
// does not hold the key, the fallback locale is consulted. The returned
// string is the stored value, unformatted.
func (r *Registry) Lookup(locale, namespace, key string) (string, error) {
	if b, ok := r.bundles[locale]; ok {
		if v, ok := b.Lookup(namespace, key); ok {
			return v, nil
		}
	}
	if v, ok := r.bundles[r.fallback].Lookup(namespace, key); ok {
		return v, nil
	}
	return "", &domain.MissingTranslationError{Locale: locale, Namespace: namespace, Key: key}
}

// Get is Lookup under the name rendering code uses.
func (r *Registry) Get(locale, namespace, key string) (string, error) {
	return r.Lookup(locale, namespace, key)
}

// GetNamespace returns a copy of the whole table for locale/namespace,
// falling back to the fallback locale's table.
func (r *Registry) GetNamespace(locale, namespace string) (map[string]string, error) {
	if b, ok := r.bundles[locale]; ok {
		if t, ok := b.Table(namespace); ok {
			return t.Map(), nil
		}
	}
	if t, ok := r.bundles[r.fallback].Table(namespace); ok {
		return t.Map(), nil
	}
	return nil, fmt.Errorf("%w: locale=%s namespace=%s", domain.ErrMissingNamespace, locale, namespace)
}

// IsFallback reports whether a lookup of locale/namespace/key would be
// served by the fallback locale rather than locale itself.
func (r *Registry) IsFallback(locale, namespace, key string) bool {
	if locale == r.fallback {
		return false
	}
	if b, ok := r.bundles[locale]; ok {
		if _, ok := b.Lookup(namespace, key); ok {
			return false
		}
	}
	return true
}
