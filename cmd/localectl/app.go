package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

	"localereg/internal/adapters/rest"
	"localereg/internal/application"
	"localereg/internal/config"
	"localereg/internal/domain/entities"
	"localereg/internal/infrastructure/codec"
	"localereg/internal/infrastructure/database"
	"localereg/internal/infrastructure/fsource"
	"localereg/internal/infrastructure/i18n"
	"localereg/internal/ports/input"
	"localereg/internal/ports/output"
	"localereg/locales"
)

type app struct {
	cfg      *config.Config
	files    fs.FS
	pool     *pgxpool.Pool
	registry *application.RegistryService
	exporter output.BundleExporter[*goi18n.Bundle]
}

// newApp wires config -> source -> loader -> registry service. The
// Postgres pool is opened lazily by the commands that need it.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, files: locales.FS, exporter: i18n.NewExporter()}
	if cfg.LocalesDir != "" {
		a.files = os.DirFS(cfg.LocalesDir)
	}
	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *app) manifest() (*config.Manifest, error) {
	return config.LoadManifest(a.files, a.cfg.Manifest)
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}
	if err := a.cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	pool, err := database.NewPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a.pool = pool
	return pool, nil
}

func (a *app) source(ctx context.Context) (output.TableSource, error) {
	if a.cfg.Source == config.SourcePostgres {
		pool, err := a.connect(ctx)
		if err != nil {
			return nil, err
		}
		return database.NewTranslationRepository(pool), nil
	}
	return fsource.New(a.files), nil
}

// load builds the registry service and publishes the first registry.
func (a *app) load(ctx context.Context) error {
	src, err := a.source(ctx)
	if err != nil {
		return err
	}
	loader := application.NewLoader(src, a.cfg.LoaderConcurrency)
	a.registry = application.NewRegistryService(loader, a.manifest, a.cfg.ResolverCacheSize)
	return a.registry.Reload(ctx)
}

func (a *app) check(ctx context.Context, w io.Writer) error {
	if err := a.load(ctx); err != nil {
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			for _, e := range joined.Unwrap() {
				fmt.Fprintf(w, "defect: %v\n", e)
			}
		}
		return fmt.Errorf("check failed: %w", err)
	}
	return report(w, a.registry)
}

// report prints the published registry and its coverage gaps.
func report(w io.Writer, admin input.RegistryAdmin) error {
	reg, err := admin.Snapshot()
	if err != nil {
		return err
	}
	gaps, err := admin.Coverage()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "fallback %s, locales %s, namespaces %s\n",
		reg.Fallback(), strings.Join(reg.Locales(), ","), strings.Join(reg.Namespaces(), ","))
	for _, g := range gaps {
		fmt.Fprintf(w, "gap: %s/%s missing %d: %s\n", g.Locale, g.Namespace, len(g.Keys), strings.Join(g.Keys, ", "))
	}
	fmt.Fprintf(w, "ok (%d coverage gaps served by fallback)\n", len(gaps))
	return nil
}

func (a *app) get(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: localectl get <locale> <namespace> <key>")
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	v, err := a.registry.Get(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func (a *app) namespace(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: localectl namespace <locale> <namespace>")
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	table, err := a.registry.GetNamespace(args[0], args[1])
	if err != nil {
		return err
	}
	return codec.EncodeTable(w, table)
}

func (a *app) export(ctx context.Context, args []string, w io.Writer) error {
	fset := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fset.String("format", "json", "output format: json or goi18n")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 1 {
		return fmt.Errorf("usage: localectl export [-format json|goi18n] <dir>")
	}
	dir := fset.Arg(0)

	if err := a.load(ctx); err != nil {
		return err
	}
	reg, err := a.registry.Snapshot()
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		if err := fsource.WriteRegistry(dir, reg); err != nil {
			return err
		}
	case "goi18n":
		if err := a.exportGoI18n(dir, reg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q", *format)
	}
	fmt.Fprintf(w, "exported %d locales to %s\n", len(reg.Locales()), dir)
	return nil
}

// exportGoI18n writes active.<locale>.toml files and loads each one back into
// the exported bundle, so a file go-i18n cannot parse fails the export.
func (a *app) exportGoI18n(dir string, reg *entities.Registry) error {
	bundle, err := a.exporter.Export(reg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, locale := range reg.Locales() {
		b, _ := reg.Bundle(locale)
		data, err := i18n.MarshalMessageFile(b)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, i18n.MessageFileName(locale))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", locale, err)
		}
		if _, err := bundle.LoadMessageFile(name); err != nil {
			return fmt.Errorf("verify %s: %w", name, err)
		}
	}
	return nil
}

func (a *app) migrate() error {
	if err := a.cfg.RequireDatabase(); err != nil {
		return err
	}
	return database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath)
}

// importRegistry loads from the filesystem tables (never from Postgres) and
// replaces the database content locale by locale.
func (a *app) importRegistry(ctx context.Context) error {
	loader := application.NewLoader(fsource.New(a.files), a.cfg.LoaderConcurrency)
	m, err := a.manifest()
	if err != nil {
		return err
	}
	reg, err := loader.Load(ctx, m)
	if err != nil {
		return err
	}
	pool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	return database.NewTranslationRepository(pool).ImportRegistry(ctx, reg)
}

func (a *app) serve(ctx context.Context) error {
	if err := a.load(ctx); err != nil {
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadOn(ctx, hup, a.registry)

	router := rest.NewRouter(rest.NewHandler(a.registry), rest.Metrics)
	return rest.NewServer(a.cfg.HTTPAddr, router, a.cfg.ShutdownTimeout).Run(ctx)
}

// reloadOn reloads the registry each time a signal arrives until ctx ends.
func reloadOn(ctx context.Context, sig <-chan os.Signal, admin input.RegistryAdmin) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := admin.Reload(ctx); err != nil {
				log.Printf("reload failed, keeping previous registry: %v", err)
			}
		}
	}
}
