package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legaldraft/drafter/internal/config"
	"legaldraft/drafter/internal/download"
	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/handlers"
	"legaldraft/drafter/internal/metrics"
	"legaldraft/drafter/internal/routers"
	"legaldraft/drafter/internal/status"
	"legaldraft/drafter/internal/utils"
	"legaldraft/drafter/internal/view"
	"legaldraft/drafter/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// command line options; a non-empty prompt selects one-shot mode
type options struct {
	ConfigPath   string
	Prompt       string
	DocumentType string
	OutDir       string
	OpenBrowser  bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("drafter", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.ConfigPath, "config", "", "YAML config file (overrides DRAFTER_CONFIG)")
	fs.StringVar(&opts.Prompt, "prompt", "", "Draft once with this prompt and exit instead of serving the console")
	fs.StringVar(&opts.DocumentType, "type", "", "Template name to use instead of auto-detection")
	fs.StringVar(&opts.OutDir, "out", "", "Directory for the downloaded document (default DRAFTER_DOWNLOAD_DIR)")
	fs.BoolVar(&opts.OpenBrowser, "open", true, "Open the download URL in a browser when the download fails")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func registerRoutes(router *chi.Mux, consoleHandler *handlers.ConsoleHandler, healthHandler *handlers.HealthHandler, page http.Handler) {
	routers.HealthRoutes(router, healthHandler)
	routers.ConsoleRoutes(router, consoleHandler)
	routers.WebRoutes(router, page)
}

func newRouter(cfg *config.Config, consoleHandler *handlers.ConsoleHandler, healthHandler *handlers.HealthHandler, page http.Handler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// no request timeout: a submission waits for the generation service
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, metrics.Middleware)

	registerRoutes(router, consoleHandler, healthHandler, page)
	return router
}

// runOnce submits a single prompt and saves the document. It returns the process exit code.
func runOnce(ctx context.Context, v *view.View, opts options, opener download.Opener, out io.Writer) int {
	v.SetPrompt(opts.Prompt, opts.DocumentType)
	if !v.Submit(ctx) {
		fmt.Fprintln(out, "error: prompt must not be empty")
		return 2
	}

	state := v.Snapshot()
	if state.Phase != view.PhaseResult {
		fmt.Fprintln(out, "error:", state.Error)
		return 1
	}
	fmt.Fprintf(out, "Document ready: %s\n", utils.DocumentTypeLabel(state.Result.DocumentType))

	outcome := v.Download(ctx, download.NewDirSink(opts.OutDir), opener)
	switch outcome.Status {
	case view.DownloadSaved:
		fmt.Fprintf(out, "Saved %s\n", outcome.Location)
	case view.DownloadFallback:
		fmt.Fprintf(out, "Download failed, open %s to retrieve the document\n", outcome.FallbackURL)
	case view.DownloadFailed:
		fmt.Fprintln(out, "error: download interrupted:", outcome.Err)
		return 1
	}
	return 0
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.ConfigPath != "" {
		os.Setenv("DRAFTER_CONFIG", opts.ConfigPath)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(2)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("request_timeout", cfg.RequestTimeout))

	client := generation.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout)
	draftView := view.New(client, logger)

	if opts.Prompt != "" {
		if opts.OutDir == "" {
			opts.OutDir = cfg.DownloadDir
		}
		var opener download.Opener = download.OpenerFunc(func(string) error { return nil })
		if opts.OpenBrowser {
			opener = download.BrowserOpener{}
		}
		code := runOnce(context.Background(), draftView, opts, opener, os.Stdout)
		logger.Sync()
		os.Exit(code)
	}

	monitor := status.NewMonitor(client, cfg.StatusSchedule, logger)
	if err := monitor.Start(); err != nil {
		logger.Fatal("Failed to start status monitor", zap.Error(err))
	}

	page, err := web.Handler()
	if err != nil {
		logger.Fatal("Failed to load console page", zap.Error(err))
	}

	consoleHandler := handlers.NewConsoleHandler(draftView, client, monitor, logger)
	healthHandler := handlers.NewHealthHandler(client, monitor, cfg)
	router := newRouter(cfg, consoleHandler, healthHandler, page)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Drafter console starting", zap.String("addr", "http://"+cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Drafter console shutting down...")
	monitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Drafter console exited")
}
