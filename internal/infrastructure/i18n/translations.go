package i18n

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"localereg/internal/domain/entities"
	"localereg/internal/ports/output"
)

// Ensure Exporter implements the output.BundleExporter port.
var _ output.BundleExporter[*i18n.Bundle] = (*Exporter)(nil)

// ErrMessageIDConflict reports two namespace/key pairs of one locale that
// join to the same go-i18n message ID, e.g. play + "x.y" and play.x + "y".
var ErrMessageIDConflict = errors.New("i18n: message id conflict")

// Exporter converts a Registry into go-i18n messages for rendering layers
// built on go-i18n. Message IDs are "<namespace>.<key>"; values are copied
// verbatim into the Other form, nothing is rendered here.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

// Export builds a go-i18n Bundle whose default language is the registry's
// fallback locale.
func (e *Exporter) Export(reg *entities.Registry) (*i18n.Bundle, error) {
	fallback, err := language.Parse(reg.Fallback())
	if err != nil {
		return nil, fmt.Errorf("i18n: parse fallback %q: %w", reg.Fallback(), err)
	}
	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, locale := range reg.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", locale, err)
		}
		b, _ := reg.Bundle(locale)
		msgs, err := messages(b)
		if err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			continue
		}
		if err := bundle.AddMessages(tag, msgs...); err != nil {
			return nil, fmt.Errorf("i18n: add %s messages: %w", locale, err)
		}
	}
	return bundle, nil
}

// MessageFileName is the go-i18n file name for locale, e.g. active.ja.toml.
func MessageFileName(locale string) string {
	return "active." + locale + ".toml"
}

// MarshalMessageFile renders one locale as a go-i18n TOML message file that
// Bundle.LoadMessageFile accepts.
func MarshalMessageFile(b *entities.Bundle) ([]byte, error) {
	msgs, err := messages(b)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]string, len(msgs))
	for _, m := range msgs {
		flat[m.ID] = m.Other
	}
	data, err := toml.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("i18n: marshal %s: %w", b.Locale(), err)
	}
	return data, nil
}

func messages(b *entities.Bundle) ([]*i18n.Message, error) {
	var out []*i18n.Message
	owner := make(map[string]string)
	for _, ns := range b.Namespaces() {
		t, _ := b.Table(ns)
		m := t.Map()
		for _, key := range slices.Sorted(maps.Keys(m)) {
			id := MessageID(ns, key)
			if prev, dup := owner[id]; dup {
				return nil, fmt.Errorf("%w: %s: %q from namespace %s and %s", ErrMessageIDConflict, b.Locale(), id, prev, ns)
			}
			owner[id] = ns
			out = append(out, &i18n.Message{ID: id, Other: m[key]})
		}
	}
	return out, nil
}

// MessageID joins a namespace and key into a go-i18n message ID.
func MessageID(namespace, key string) string {
	return namespace + "." + key
}
