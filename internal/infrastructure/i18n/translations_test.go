package i18n_test

import (
	"testing"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"localereg/internal/domain/entities"
	"localereg/internal/infrastructure/i18n"
)

func testRegistry(t *testing.T) *entities.Registry {
	t.Helper()
	en, err := entities.Assemble("en", []entities.RawTable{
		{Namespace: "common", Entries: map[string]any{"ok": "OK"}},
		{Namespace: "navbar", Entries: map[string]any{"play": "Play"}},
		{Namespace: "play", Entries: map[string]any{"waiting": "Waiting for {name}…"}},
	})
	require.NoError(t, err)
	ja, err := entities.Assemble("ja", []entities.RawTable{
		{Namespace: "common", Entries: map[string]any{}},
		{Namespace: "navbar", Entries: map[string]any{"play": "プレイ"}},
		{Namespace: "play", Entries: map[string]any{}},
	})
	require.NoError(t, err)
	reg, err := entities.NewRegistry("en", en, ja)
	require.NoError(t, err)
	return reg
}

func localize(t *testing.T, b *goi18n.Bundle, id string, langs ...string) string {
	t.Helper()
	msg, err := goi18n.NewLocalizer(b, langs...).Localize(&goi18n.LocalizeConfig{MessageID: id})
	require.NoError(t, err)
	return msg
}

func TestExporter(t *testing.T) {
	bundle, err := i18n.NewExporter().Export(testRegistry(t))
	require.NoError(t, err)

	assert.Contains(t, bundle.LanguageTags(), language.English)
	assert.Contains(t, bundle.LanguageTags(), language.Japanese)

	assert.Equal(t, "プレイ", localize(t, bundle, "navbar.play", "ja", "en"))

	// go-i18n serves the default language and reports the miss alongside it.
	msg, _ := goi18n.NewLocalizer(bundle, "ja").Localize(&goi18n.LocalizeConfig{MessageID: "common.ok"})
	assert.Equal(t, "OK", msg)

	assert.Equal(t, "Waiting for {name}…", localize(t, bundle, "play.waiting", "en"))
}

func TestMarshalMessageFile(t *testing.T) {
	reg := testRegistry(t)
	ja, _ := reg.Bundle("ja")

	data, err := i18n.MarshalMessageFile(ja)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, toml.Unmarshal(data, &flat))
	assert.Equal(t, map[string]string{"navbar.play": "プレイ"}, flat)

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	_, err = bundle.ParseMessageFileBytes(data, i18n.MessageFileName("ja"))
	require.NoError(t, err)
	assert.Equal(t, "プレイ", localize(t, bundle, "navbar.play", "ja"))
}

func TestMessageID(t *testing.T) {
	assert.Equal(t, "settings.theme-dark", i18n.MessageID("settings", "theme-dark"))
	assert.Equal(t, "active.ja.toml", i18n.MessageFileName("ja"))
}

func TestMessageIDConflict(t *testing.T) {
	en, err := entities.Assemble("en", []entities.RawTable{
		{Namespace: "play", Entries: map[string]any{"x.y": "from play"}},
		{Namespace: "play.x", Entries: map[string]any{"y": "from play.x"}},
	})
	require.NoError(t, err)
	reg, err := entities.NewRegistry("en", en)
	require.NoError(t, err)

	_, err = i18n.MarshalMessageFile(en)
	assert.ErrorIs(t, err, i18n.ErrMessageIDConflict)
	assert.ErrorContains(t, err, "play.x.y")

	_, err = i18n.NewExporter().Export(reg)
	assert.ErrorIs(t, err, i18n.ErrMessageIDConflict)
}
