// Package locales embeds the default translation tables shipped with the
// binary, laid out as <locale>/<namespace>.json next to manifest.toml.
package locales

import "embed"

//go:embed manifest.toml */*.json
var FS embed.FS
