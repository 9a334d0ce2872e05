package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Manifest declares which locales and namespaces make up the registry.
//
//	fallback   = "en"
//	locales    = ["en", "ja"]
//	namespaces = ["common", "navbar", "play", "settings", "supervisor"]
type Manifest struct {
	Fallback   string   `toml:"fallback"`
	Locales    []string `toml:"locales"`
	Namespaces []string `toml:"namespaces"`
}

// LoadManifest reads and validates the manifest stored at name in fsys.
func LoadManifest(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", name, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes TOML manifest data. The fallback locale is moved to
// the front of Locales, and added there when omitted.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	m.Fallback = strings.TrimSpace(m.Fallback)
	if m.Fallback == "" {
		return fmt.Errorf("manifest: fallback locale is required")
	}

	seen := make(map[string]bool, len(m.Locales)+1)
	locales := []string{m.Fallback}
	seen[m.Fallback] = true
	for _, l := range m.Locales {
		l = strings.TrimSpace(l)
		if l == m.Fallback {
			continue
		}
		if seen[l] {
			return fmt.Errorf("manifest: locale %q listed twice", l)
		}
		seen[l] = true
		locales = append(locales, l)
	}
	for _, l := range locales {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("manifest: locale %q is not a valid language tag: %w", l, err)
		}
	}
	m.Locales = locales

	if len(m.Namespaces) == 0 {
		return fmt.Errorf("manifest: at least one namespace is required")
	}
	for i, ns := range m.Namespaces {
		ns = strings.TrimSpace(ns)
		// "." separates namespace from key in exported go-i18n message IDs.
		if ns == "" || strings.ContainsAny(ns, `/\.`) {
			return fmt.Errorf("manifest: invalid namespace %q", m.Namespaces[i])
		}
		if slices.Contains(m.Namespaces[:i], ns) {
			return fmt.Errorf("manifest: namespace %q listed twice", ns)
		}
		m.Namespaces[i] = ns
	}
	return nil
}
