package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localereg/internal/domain"
	"localereg/internal/domain/entities"
)

func TestAssemble(t *testing.T) {
	t.Run("combines tables in input order", func(t *testing.T) {
		b, err := entities.Assemble("ja", []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"ok": "OK"}},
			{Namespace: "navbar", Entries: map[string]any{"play": "プレイ"}},
			{Namespace: "play", Entries: map[string]any{}},
		})
		require.NoError(t, err)
		assert.Equal(t, "ja", b.Locale())
		assert.Equal(t, []string{"common", "navbar", "play"}, b.Namespaces())

		v, ok := b.Lookup("navbar", "play")
		assert.True(t, ok)
		assert.Equal(t, "プレイ", v)

		_, ok = b.Lookup("play", "anything")
		assert.False(t, ok)
		_, ok = b.Lookup("settings", "anything")
		assert.False(t, ok)
	})

	t.Run("rejects duplicate namespace", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"ok": "OK"}},
			{Namespace: "common", Entries: map[string]any{"ok": "Okay"}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateNamespace)

		var aerr *domain.AssemblyError
		require.True(t, errors.As(err, &aerr))
		assert.Equal(t, "en", aerr.Locale)
		assert.Equal(t, "common", aerr.Namespace)
	})

	t.Run("rejects non-string value", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"greeting": float64(42)}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedTable)

		var aerr *domain.AssemblyError
		require.True(t, errors.As(err, &aerr))
		assert.Equal(t, "common", aerr.Namespace)
		assert.Equal(t, "greeting", aerr.Key)
		assert.Contains(t, err.Error(), "number")
	})

	t.Run("rejects nested object", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "settings", Entries: map[string]any{
				"audio": map[string]any{"volume": "Volume"},
			}},
		})
		assert.ErrorIs(t, err, domain.ErrMalformedTable)
		assert.Contains(t, err.Error(), "object")
	})

	t.Run("rejects null value", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"ok": nil}},
		})
		assert.ErrorIs(t, err, domain.ErrMalformedTable)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"": "blank"}},
		})
		assert.ErrorIs(t, err, domain.ErrMalformedTable)
	})

	t.Run("rejects empty namespace id", func(t *testing.T) {
		_, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "", Entries: map[string]any{"ok": "OK"}},
		})
		assert.ErrorIs(t, err, domain.ErrMalformedTable)
	})

	t.Run("rejects empty locale", func(t *testing.T) {
		_, err := entities.Assemble(" ", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidLocale)
	})

	t.Run("does not alias input maps", func(t *testing.T) {
		entries := map[string]any{"ok": "OK"}
		b, err := entities.Assemble("en", []entities.RawTable{{Namespace: "common", Entries: entries}})
		require.NoError(t, err)

		entries["ok"] = "changed"
		entries["new"] = "added"

		v, _ := b.Lookup("common", "ok")
		assert.Equal(t, "OK", v)
		_, ok := b.Lookup("common", "new")
		assert.False(t, ok)
	})

	t.Run("is deterministic", func(t *testing.T) {
		input := []entities.RawTable{
			{Namespace: "common", Entries: map[string]any{"ok": "OK", "cancel": "Cancel"}},
			{Namespace: "navbar", Entries: map[string]any{"settings": "Settings"}},
		}
		first, err := entities.Assemble("en", input)
		require.NoError(t, err)
		second, err := entities.Assemble("en", input)
		require.NoError(t, err)

		assert.Equal(t, first.Namespaces(), second.Namespaces())
		for _, ns := range first.Namespaces() {
			a, _ := first.Table(ns)
			b, _ := second.Table(ns)
			assert.Equal(t, a.Map(), b.Map())
		}
	})

	t.Run("preserves placeholder syntax", func(t *testing.T) {
		b, err := entities.Assemble("en", []entities.RawTable{
			{Namespace: "play", Entries: map[string]any{"waiting": "Waiting for {name}…"}},
		})
		require.NoError(t, err)
		v, _ := b.Lookup("play", "waiting")
		assert.Equal(t, "Waiting for {name}…", v)
	})
}

func TestTable(t *testing.T) {
	table := entities.NewTable(map[string]string{"b": "2", "a": "1"})

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Keys())

	m := table.Map()
	m["a"] = "mutated"
	v, _ := table.Get("a")
	assert.Equal(t, "1", v)

	var zero entities.Table
	_, ok := zero.Get("a")
	assert.False(t, ok)
	assert.Empty(t, zero.Map())
}
