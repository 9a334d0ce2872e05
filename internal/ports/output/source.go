package output

import "context"

// TableSource provides the raw namespace tables a registry is assembled
// from. A table that does not exist yields an error wrapping
// domain.ErrTableNotFound.
type TableSource interface {
	ReadTable(ctx context.Context, locale, namespace string) (map[string]any, error)
}
