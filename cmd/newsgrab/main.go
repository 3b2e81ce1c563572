package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/dateparse"
	"github.com/fwojciec/newsgrab/dispatch"
	"github.com/fwojciec/newsgrab/htmltomarkdown"
	nghttp "github.com/fwojciec/newsgrab/http"
	"github.com/fwojciec/newsgrab/ingest"
	"github.com/fwojciec/newsgrab/rod"
	ngslog "github.com/fwojciec/newsgrab/slog"
	"github.com/fwojciec/newsgrab/sqlite"
	"github.com/fwojciec/newsgrab/yaml"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Source registry loaded from --sources, or the built-in default.
	Config *yaml.Config
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsgrab"),
		kong.Description("Fetch news articles, extract their content and keep failures for catch-up."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsgrab --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, err := newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = logger

	// Sources
	if cli.SourcesFile != "" {
		m.Config, err = yaml.Load(cli.SourcesFile)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEWSGRAB_SOURCES to a valid source registry file\n")
			return fmt.Errorf("failed to load sources from %q: %w", cli.SourcesFile, err)
		}
	} else {
		m.Config = yaml.Default()
	}
	loc, err := m.Config.Location()
	if err != nil {
		return err
	}
	registry, err := buildRegistry(m.Config)
	if err != nil {
		return err
	}
	deps.Location = loc
	deps.Registry = registry

	if cmd == "sources" {
		return kongCtx.Run(deps)
	}

	// Database
	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEWSGRAB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	store := sqlite.NewStore(m.DB)
	deps.Contents = store.ContentService
	deps.Articles = store.ArticleService
	deps.Revisits = store.RevisitService
	deps.Markdown = htmltomarkdown.NewConverter()
	deps.Converter = deps.Markdown

	switch cmd {
	case "visit", "catchup", "revisit", "schedule":
		var base newsgrab.Fetcher = nghttp.NewFetcher()
		if cli.Browser {
			base, err = rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		}
		fetcher := ngslog.NewLoggingFetcher(base, logger)
		defer fetcher.Close()

		dispatcher := dispatch.NewDispatcher(
			ngslog.NewLoggingStore(store, logger),
			dateparse.NewParser(loc),
		)

		deps.Ingester = &ingest.Ingester{
			Fetcher:     fetcher,
			Adapters:    ngslog.NewLoggingResolver(registry, logger),
			Dispatcher:  dispatcher,
			Articles:    store.ArticleService,
			Contents:    store.ContentService,
			RateLimiter: ingest.NewDomainLimiter(1.0),
			RetryLog: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	}

	return kongCtx.Run(deps)
}

// newLogger builds the text logger used for diagnostics on stderr.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsgrab.db"
	}
	dir := filepath.Join(home, ".newsgrab")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsgrab.db")
}
