package database

import (
	"github.com/jackc/pgx/v5"

	"localereg/internal/domain/entities"
)

var translationColumns = []string{"locale", "namespace", "key", "value"}

// translationRows flattens a bundle into rows for the translations table,
// ordered by namespace (assembly order) then key.
func translationRows(b *entities.Bundle) [][]any {
	var rows [][]any
	for _, ns := range b.Namespaces() {
		t, _ := b.Table(ns)
		for _, key := range t.Keys() {
			v, _ := t.Get(key)
			rows = append(rows, []any{b.Locale(), ns, key, v})
		}
	}
	return rows
}

// collectTable reads (key, value) rows into a raw table.
func collectTable(rows pgx.Rows) (map[string]any, error) {
	defer rows.Close()
	out := make(map[string]any)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, rows.Err()
}
