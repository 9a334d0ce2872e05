package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"localereg/internal/config"
	"localereg/internal/domain/entities"
	"localereg/internal/ports/output"
)

// Loader reads every table declared by a manifest and builds a Registry.
type Loader struct {
	source      output.TableSource
	concurrency int
}

func NewLoader(source output.TableSource, concurrency int) *Loader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Loader{source: source, concurrency: concurrency}
}

// Load is all-or-nothing: any read or assembly error aborts it and no
// partial registry is returned.
func (l *Loader) Load(ctx context.Context, m *config.Manifest) (*entities.Registry, error) {
	raw := make([][]entities.RawTable, len(m.Locales))
	for i := range raw {
		raw[i] = make([]entities.RawTable, len(m.Namespaces))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, locale := range m.Locales {
		for j, ns := range m.Namespaces {
			g.Go(func() error {
				entries, err := l.source.ReadTable(gctx, locale, ns)
				if err != nil {
					return fmt.Errorf("read table %s/%s: %w", locale, ns, err)
				}
				raw[i][j] = entities.RawTable{Namespace: ns, Entries: entries}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundles := make([]*entities.Bundle, len(m.Locales))
	for i, locale := range m.Locales {
		b, err := entities.Assemble(locale, raw[i])
		if err != nil {
			return nil, err
		}
		bundles[i] = b
	}

	reg, err := entities.NewRegistry(m.Fallback, bundles...)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return reg, nil
}
