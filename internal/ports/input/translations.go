package input

import (
	"context"

	"localereg/internal/domain/entities"
)

// Translations is the read-only contract offered to rendering code.
type Translations interface {
	// Get resolves one key, applying locale fallback.
	Get(locale, namespace, key string) (string, error)
	// GetNamespace returns a copy of a whole namespace table.
	GetNamespace(locale, namespace string) (map[string]string, error)
	Locales() []string
	Fallback() string
}

// RegistryAdmin covers the operations used by operators and tooling.
type RegistryAdmin interface {
	Reload(ctx context.Context) error
	Snapshot() (*entities.Registry, error)
	Coverage() ([]entities.Gap, error)
}
