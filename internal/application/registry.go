package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync/atomic"
	"time"

	"localereg/internal/config"
	"localereg/internal/domain"
	"localereg/internal/domain/entities"
	"localereg/internal/metrics"
	"localereg/internal/ports/input"
	"localereg/pkg/locale"
)

var (
	_ input.Translations  = (*RegistryService)(nil)
	_ input.RegistryAdmin = (*RegistryService)(nil)
)

// ManifestFunc returns the manifest to load. It is called on every reload so
// that a changed manifest is picked up together with the tables.
type ManifestFunc func() (*config.Manifest, error)

// published is swapped as a whole so that readers always see a registry and
// the resolver built for its locales.
type published struct {
	reg      *entities.Registry
	resolver *locale.Resolver
}

// RegistryService publishes the current Registry and serves lookups from it.
type RegistryService struct {
	loader    *Loader
	manifest  ManifestFunc
	cacheSize int
	current   atomic.Pointer[published]
	reloading atomic.Bool
}

func NewRegistryService(loader *Loader, manifest ManifestFunc, resolverCacheSize int) *RegistryService {
	return &RegistryService{
		loader:    loader,
		manifest:  manifest,
		cacheSize: resolverCacheSize,
	}
}

// Reload loads a fresh registry and publishes it. On failure the previously
// published registry, if any, keeps serving.
func (s *RegistryService) Reload(ctx context.Context) error {
	if !s.reloading.CompareAndSwap(false, true) {
		return fmt.Errorf("reload already in progress")
	}
	defer s.reloading.Store(false)

	start := time.Now()
	p, err := s.load(ctx)
	metrics.LoadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Reloads.WithLabelValues("error").Inc()
		return err
	}
	s.current.Store(p)
	metrics.Reloads.WithLabelValues("ok").Inc()

	for _, l := range p.reg.Locales() {
		b, _ := p.reg.Bundle(l)
		n := 0
		for _, ns := range b.Namespaces() {
			t, _ := b.Table(ns)
			n += t.Len()
		}
		metrics.Keys.WithLabelValues(l).Set(float64(n))
	}
	log.Printf("registry: loaded %d locales (fallback=%s) in %s", len(p.reg.Locales()), p.reg.Fallback(), time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *RegistryService) load(ctx context.Context) (*published, error) {
	m, err := s.manifest()
	if err != nil {
		return nil, err
	}
	reg, err := s.loader.Load(ctx, m)
	if err != nil {
		return nil, err
	}
	resolver, err := locale.NewResolver(reg.Locales(), s.cacheSize)
	if err != nil {
		return nil, err
	}
	return &published{reg: reg, resolver: resolver}, nil
}

// Publish installs an already built registry, bypassing the loader.
func (s *RegistryService) Publish(reg *entities.Registry) error {
	resolver, err := locale.NewResolver(reg.Locales(), s.cacheSize)
	if err != nil {
		return err
	}
	s.current.Store(&published{reg: reg, resolver: resolver})
	return nil
}

func (s *RegistryService) snapshot() (*published, error) {
	p := s.current.Load()
	if p == nil {
		return nil, domain.ErrNotLoaded
	}
	return p, nil
}

// Snapshot returns the registry currently published.
func (s *RegistryService) Snapshot() (*entities.Registry, error) {
	p, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return p.reg, nil
}

// Get resolves one translation. The requested locale is first mapped onto
// a configured locale (ja-JP -> ja); the registry then applies fallback.
func (s *RegistryService) Get(requested, namespace, key string) (string, error) {
	p, err := s.snapshot()
	if err != nil {
		return "", err
	}
	loc := p.resolver.Resolve(requested)
	v, err := p.reg.Get(loc, namespace, key)
	if err != nil {
		metrics.Lookups.WithLabelValues(namespaceLabel(p.reg, namespace), metrics.ResultMissing).Inc()
		var merr *domain.MissingTranslationError
		if errors.As(err, &merr) {
			merr.Locale = requested
		}
		log.Printf("registry: %v", err)
		return "", err
	}
	result := metrics.ResultHit
	if p.reg.IsFallback(loc, namespace, key) {
		result = metrics.ResultFallback
	}
	metrics.Lookups.WithLabelValues(namespace, result).Inc()
	return v, nil
}

// GetNamespace returns a copy of the table for requested/namespace.
func (s *RegistryService) GetNamespace(requested, namespace string) (map[string]string, error) {
	p, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	loc := p.resolver.Resolve(requested)
	m, err := p.reg.GetNamespace(loc, namespace)
	if err != nil {
		metrics.Lookups.WithLabelValues(namespaceLabel(p.reg, namespace), metrics.ResultMissing).Inc()
		log.Printf("registry: %v", err)
		return nil, err
	}
	result := metrics.ResultHit
	if b, ok := p.reg.Bundle(loc); !ok || !b.HasNamespace(namespace) {
		result = metrics.ResultFallback
	}
	metrics.Lookups.WithLabelValues(namespace, result).Inc()
	return m, nil
}

// namespaceLabel keeps the lookup metric bounded to the configured
// namespaces; callers control the namespace string.
func namespaceLabel(reg *entities.Registry, namespace string) string {
	if slices.Contains(reg.Namespaces(), namespace) {
		return namespace
	}
	return metrics.UnknownNamespace
}

// Resolve maps a requested locale onto a configured one, or returns it
// unchanged when nothing matches.
func (s *RegistryService) Resolve(requested string) string {
	p, err := s.snapshot()
	if err != nil {
		return requested
	}
	return p.resolver.Resolve(requested)
}

// MatchAcceptLanguage returns the configured locale best matching an
// Accept-Language header, or the fallback locale.
func (s *RegistryService) MatchAcceptLanguage(header string) string {
	p, err := s.snapshot()
	if err != nil {
		return ""
	}
	if l := p.resolver.ParseAcceptLanguage(header); l != "" {
		return l
	}
	return p.reg.Fallback()
}

// Locales returns the configured locales, or nil before the first load.
func (s *RegistryService) Locales() []string {
	p, err := s.snapshot()
	if err != nil {
		return nil
	}
	return p.reg.Locales()
}

// Fallback returns the fallback locale, or "" before the first load.
func (s *RegistryService) Fallback() string {
	p, err := s.snapshot()
	if err != nil {
		return ""
	}
	return p.reg.Fallback()
}

// Coverage reports the keys each locale is missing relative to the fallback.
func (s *RegistryService) Coverage() ([]entities.Gap, error) {
	p, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return p.reg.Coverage(), nil
}
