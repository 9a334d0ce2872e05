// Package fsource reads namespace tables laid out as <locale>/<namespace>.json
// in any fs.FS: a directory on disk, the embedded default locales, or a
// test MapFS.
package fsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"localereg/internal/domain"
	"localereg/internal/domain/entities"
	"localereg/internal/infrastructure/codec"
	"localereg/internal/ports/output"
)

var _ output.TableSource = (*Source)(nil)

type Source struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// NewDir returns a Source rooted at a directory on disk.
func NewDir(dir string) *Source {
	return New(os.DirFS(dir))
}

func (s *Source) ReadTable(ctx context.Context, locale, namespace string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := TablePath(locale, namespace)
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTableNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	table, err := codec.DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return table, nil
}

// TablePath is the slash-separated location of one table inside the FS.
func TablePath(locale, namespace string) string {
	return path.Join(locale, namespace+".json")
}

// WriteRegistry writes every table of reg under dir using the layout
// ReadTable expects.
func WriteRegistry(dir string, reg *entities.Registry) error {
	for _, locale := range reg.Locales() {
		b, _ := reg.Bundle(locale)
		if err := os.MkdirAll(filepath.Join(dir, locale), 0o755); err != nil {
			return fmt.Errorf("create locale dir: %w", err)
		}
		for _, ns := range b.Namespaces() {
			t, _ := b.Table(ns)
			if err := writeTable(filepath.Join(dir, filepath.FromSlash(TablePath(locale, ns))), t.Map()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(name string, entries map[string]string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := codec.EncodeTable(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}
