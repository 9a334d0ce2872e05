package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"localereg/internal/domain"
	"localereg/internal/domain/entities"
	"localereg/internal/ports/output"
)

var _ output.TableSource = (*TranslationRepository)(nil)

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type TranslationRepository struct {
	db DBTX
}

func NewTranslationRepository(db DBTX) *TranslationRepository {
	return &TranslationRepository{db: db}
}

const namespaceExists = `SELECT EXISTS (SELECT 1 FROM locale_namespaces WHERE locale = $1 AND namespace = $2)`

const selectTable = `SELECT key, value FROM translations WHERE locale = $1 AND namespace = $2`

func (r *TranslationRepository) ReadTable(ctx context.Context, locale, namespace string) (map[string]any, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, namespaceExists, locale, namespace).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check namespace %s/%s: %w", locale, namespace, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrTableNotFound, locale, namespace)
	}

	rows, err := r.db.Query(ctx, selectTable, locale, namespace)
	if err != nil {
		return nil, fmt.Errorf("select translations %s/%s: %w", locale, namespace, err)
	}
	table, err := collectTable(rows)
	if err != nil {
		return nil, fmt.Errorf("scan translations %s/%s: %w", locale, namespace, err)
	}
	return table, nil
}

// ImportBundle replaces everything stored for the bundle's locale in one
// transaction, so readers see either the old or the new content.
func (r *TranslationRepository) ImportBundle(ctx context.Context, b *entities.Bundle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import %s: %w", b.Locale(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM locale_namespaces WHERE locale = $1`, b.Locale()); err != nil {
		return fmt.Errorf("clear locale %s: %w", b.Locale(), err)
	}
	for i, ns := range b.Namespaces() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO locale_namespaces (locale, namespace, position) VALUES ($1, $2, $3)`,
			b.Locale(), ns, i,
		); err != nil {
			return fmt.Errorf("insert namespace %s/%s: %w", b.Locale(), ns, err)
		}
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"translations"}, translationColumns, pgx.CopyFromRows(translationRows(b)))
	if err != nil {
		return fmt.Errorf("copy translations %s: %w", b.Locale(), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import %s: %w", b.Locale(), err)
	}
	log.Printf("database: imported %d translations for %s", n, b.Locale())
	return nil
}

// ImportRegistry imports every bundle of reg.
func (r *TranslationRepository) ImportRegistry(ctx context.Context, reg *entities.Registry) error {
	for _, locale := range reg.Locales() {
		b, _ := reg.Bundle(locale)
		if err := r.ImportBundle(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
