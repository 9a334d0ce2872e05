// Package locale maps caller-supplied language tags onto the set of
// configured locales.
package locale

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
)

// Resolver picks the configured locale that best serves a requested tag.
// It is safe for concurrent use.
type Resolver struct {
	locales map[string]bool
	names   []string
	matcher language.Matcher
	cache   *lru.Cache[string, string]
}

// NewResolver builds a Resolver for locales. The first locale is the
// matcher's default and should be the fallback locale.
func NewResolver(locales []string, cacheSize int) (*Resolver, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("locale: no locales configured")
	}
	tags := make([]language.Tag, len(locales))
	set := make(map[string]bool, len(locales))
	for i, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("locale: parse %q: %w", l, err)
		}
		tags[i] = tag
		set[l] = true
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("locale: cache: %w", err)
	}
	return &Resolver{
		locales: set,
		names:   append([]string(nil), locales...),
		matcher: language.NewMatcher(tags),
		cache:   cache,
	}, nil
}

// Resolve returns requested itself when it is configured, else the
// configured locale matching it with at least High confidence (ja-JP -> ja),
// else requested unchanged so the registry's fallback applies.
func (r *Resolver) Resolve(requested string) string {
	if r.locales[requested] || requested == "" {
		return requested
	}
	if v, ok := r.cache.Get(requested); ok {
		return v
	}

	resolved := requested
	if tag, err := language.Parse(requested); err == nil {
		_, idx, conf := r.matcher.Match(tag)
		if conf >= language.High {
			resolved = r.names[idx]
		}
	}
	r.cache.Add(requested, resolved)
	return resolved
}

// ParseAcceptLanguage returns the configured locale best matching an
// Accept-Language header, or "" if nothing matches.
func (r *Resolver) ParseAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return r.names[idx]
}
