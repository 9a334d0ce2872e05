package fsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localereg/internal/domain"
	"localereg/internal/domain/entities"
	"localereg/internal/infrastructure/fsource"
)

func TestReadTable(t *testing.T) {
	src := fsource.New(fstest.MapFS{
		"en/common.json": &fstest.MapFile{Data: []byte(`{"ok": "OK"}`)},
		"en/broken.json": &fstest.MapFile{Data: []byte(`{"ok": `)},
	})
	ctx := context.Background()

	table, err := src.ReadTable(ctx, "en", "common")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": "OK"}, table)

	_, err = src.ReadTable(ctx, "ja", "common")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
	assert.Contains(t, err.Error(), "ja/common.json")

	_, err = src.ReadTable(ctx, "en", "broken")
	assert.ErrorIs(t, err, domain.ErrMalformedTable)
}

func TestWriteRegistry(t *testing.T) {
	en, err := entities.Assemble("en", []entities.RawTable{
		{Namespace: "common", Entries: map[string]any{"ok": "OK", "html": "<b>{name}</b>"}},
	})
	require.NoError(t, err)
	ja, err := entities.Assemble("ja", []entities.RawTable{
		{Namespace: "common", Entries: map[string]any{"ok": "はい"}},
	})
	require.NoError(t, err)
	reg, err := entities.NewRegistry("en", en, ja)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, fsource.WriteRegistry(dir, reg))

	data, err := os.ReadFile(filepath.Join(dir, "en", "common.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"html\": \"<b>{name}</b>\",\n  \"ok\": \"OK\"\n}\n", string(data))

	table, err := fsource.NewDir(dir).ReadTable(context.Background(), "ja", "common")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": "はい"}, table)
}
