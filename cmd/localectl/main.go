// Command localectl loads, checks, queries, exports and serves the
// translation registry.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: localectl <command> [args]

commands:
  check                              load every locale and report defects and coverage gaps
  get <locale> <namespace> <key>     print one translation
  namespace <locale> <namespace>     print a namespace table as JSON
  export [-format json|goi18n] <dir> write the registry to dir
  migrate                            apply database migrations
  import                             copy the fs/embed registry into PostgreSQL
  serve                              run the HTTP API (SIGHUP reloads)

configuration is read from the environment (and .env): LOCALES_SOURCE,
LOCALES_DIR, LOCALES_MANIFEST, DATABASE_URL, MIGRATIONS_PATH, HTTP_ADDR,
LOADER_CONCURRENCY, RESOLVER_CACHE_SIZE, SHUTDOWN_TIMEOUT.
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("localectl: ")

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	switch cmd {
	case "check":
		return app.check(ctx, stdout)
	case "get":
		return app.get(ctx, args, stdout)
	case "namespace":
		return app.namespace(ctx, args, stdout)
	case "export":
		return app.export(ctx, args, stdout)
	case "migrate":
		return app.migrate()
	case "import":
		return app.importRegistry(ctx)
	case "serve":
		return app.serve(ctx)
	default:
		return fmt.Errorf("unknown command %q (run localectl -h)", cmd)
	}
}
