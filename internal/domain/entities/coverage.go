package entities

// Gap lists the keys a locale is missing for one namespace. Lookups for
// these keys are served by the fallback locale.
type Gap struct {
	Locale    string
	Namespace string
	Keys      []string
}

// Coverage returns the gaps of every non-fallback locale, in locale then
// namespace order. Keys within a gap are sorted.
func (r *Registry) Coverage() []Gap {
	base := r.bundles[r.fallback]
	var gaps []Gap
	for _, locale := range r.locales {
		if locale == r.fallback {
			continue
		}
		b := r.bundles[locale]
		for _, ns := range base.namespaces {
			t, _ := b.Table(ns)
			var missing []string
			for _, key := range base.tables[ns].Keys() {
				if _, ok := t.Get(key); !ok {
					missing = append(missing, key)
				}
			}
			if len(missing) > 0 {
				gaps = append(gaps, Gap{Locale: locale, Namespace: ns, Keys: missing})
			}
		}
	}
	return gaps
}
