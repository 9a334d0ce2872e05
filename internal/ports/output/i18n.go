package output

import "localereg/internal/domain/entities"

// BundleExporter turns a registry snapshot into a consumer-specific
// artifact (for example a go-i18n bundle for a rendering layer).
type BundleExporter[T any] interface {
	Export(reg *entities.Registry) (T, error)
}
