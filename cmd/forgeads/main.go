package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/backoff"
	"github.com/forgeads/forgeads/creative"
	"github.com/forgeads/forgeads/gemini"
	"github.com/forgeads/forgeads/goquery"
	forgeadshttp "github.com/forgeads/forgeads/http"
	"github.com/forgeads/forgeads/poppler"
	"github.com/forgeads/forgeads/rod"
	adslog "github.com/forgeads/forgeads/slog"
	"github.com/forgeads/forgeads/sqlite"
	"github.com/forgeads/forgeads/throttle"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the history store.
	DB *sqlite.DB

	// Services for end-to-end testing. Real implementations are wired
	// only when these are nil.
	Creatives forgeads.CreativeService
	Products  forgeads.ProductService

	fetcher forgeads.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.fetcher != nil {
		_ = m.fetcher.Close()
	}
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
		kong.Name("forgeads"),
		kong.Description("Turn landing pages and product documents into ad copy."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		Vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'forgeads --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Format = cli.Format

	command := kongCtx.Command()
	defer m.Close()

	if needsHistory(command, cli) && m.Products == nil {
		path := cli.DB
		if path == "" {
			path = defaultDBPath()
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FORGEADS_DB to use a different database path\n")
			fmt.Fprintf(stderr, "error: failed to open database at %q: %s\n", path, err)
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.Products = sqlite.NewProductService(m.DB)
	}
	deps.Products = m.Products

	if needsCreatives(command) && m.Creatives == nil {
		creatives, err := m.wireCreatives(ctx, cli, logger, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", err)
			return err
		}
		m.Creatives = creatives
	}
	deps.Creatives = m.Creatives
	if needsHistory(command, cli) && deps.Creatives != nil && deps.Products != nil {
		deps.Creatives = &creative.History{CreativeService: deps.Creatives, Products: deps.Products}
	}

	return kongCtx.Run(deps)
}

// wireCreatives builds the creative service from flags. Every external
// client is constructed here and injected.
func (m *Main) wireCreatives(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (forgeads.CreativeService, error) {
	if cli.APIKey == "" {
		fmt.Fprintln(stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var text forgeads.TextGenerator = adslog.NewLoggingTextGenerator(
		gemini.NewTextGenerator(client, gemini.WithModel(cli.Model)), logger)
	var images forgeads.ImageGenerator = adslog.NewLoggingImageGenerator(
		gemini.NewImageGenerator(client, cli.ImageModel), logger)
	if cli.RPS > 0 {
		text = throttle.NewTextGenerator(text, cli.RPS, len(forgeads.AssetTypes))
		images = throttle.NewImageGenerator(images, cli.RPS)
	}
	if cli.Retries > 0 {
		notify := backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("retrying", "err", err, "next", next)
		})
		text = backoff.NewTextGenerator(text, backoff.WithMaxRetries(cli.Retries), notify)
		images = backoff.NewImageGenerator(images, backoff.WithMaxRetries(cli.Retries), notify)
	}

	var fetcher forgeads.Fetcher
	if cli.Browser {
		browser, err := rod.NewBrowser()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rod.NewFetcher(browser, rod.WithTimeout(cli.Timeout))
	} else {
		fetcher = forgeadshttp.NewFetcher(forgeadshttp.WithTimeout(cli.Timeout))
	}
	if cli.FetchRPS > 0 {
		fetcher = throttle.NewFetcher(fetcher, cli.FetchRPS)
	}
	fetcher = adslog.NewLoggingFetcher(fetcher, logger)
	m.fetcher = fetcher

	converter := adslog.NewLoggingPDFConverter(poppler.NewConverter(poppler.WithPath(cli.PDFToText)), logger)

	svc := creative.NewService(fetcher, goquery.NewExtractor(), converter, text, images)
	svc.Pipeline.OnStage = adslog.StageLogger(logger)
	return adslog.NewLoggingCreativeService(svc, logger), nil
}

func needsCreatives(command string) bool {
	switch firstWord(command) {
	case "analyze", "copy", "image", "serve":
		return true
	}
	return false
}

func needsHistory(command string, cli *CLI) bool {
	switch firstWord(command) {
	case "history", "serve":
		return true
	case "analyze":
		return !cli.Analyze.NoSave
	}
	return false
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "forgeads.db"
	}
	dir := filepath.Join(home, ".forgeads")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "forgeads.db")
}
