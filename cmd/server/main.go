package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amiyamandal-dev/newsdesk/internal/api"
	"github.com/amiyamandal-dev/newsdesk/internal/api/handlers"
	"github.com/amiyamandal-dev/newsdesk/internal/config"
	"github.com/amiyamandal-dev/newsdesk/internal/listing"
	"github.com/amiyamandal-dev/newsdesk/internal/repository/sqlite"
	"github.com/amiyamandal-dev/newsdesk/internal/search"
	"github.com/amiyamandal-dev/newsdesk/internal/service"
	"github.com/amiyamandal-dev/newsdesk/internal/web"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
)

func main() {
	configFile := flag.String("config", "", "path to config file (default: configs/config.yaml or ./config.yaml)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting newsdesk server",
		"version", "1.0.0",
		"mode", cfg.Server.Mode,
	)

	// Initialize database
	db, err := sqlite.New(
		cfg.Database.Path,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	log.Info("Database initialized", "path", cfg.Database.Path)

	// Initialize repositories
	articleRepo := sqlite.NewArticleRepo(db)
	categoryRepo := sqlite.NewCategoryRepo(db)
	tagRepo := sqlite.NewTagRepo(db)
	reactionRepo := sqlite.NewReactionRepo(db)

	// Initialize search index; the interfaces stay nil when disabled
	var (
		searchIndex search.Index
		indexer     service.SearchIndexer
	)
	if cfg.Search.Enabled {
		bleveIndex, err := search.Open(cfg.Search.IndexPath, log)
		if err != nil {
			log.Fatal("Failed to open search index", "error", err)
		}
		defer bleveIndex.Close()

		count, _ := bleveIndex.Count()
		log.Info("Search index opened", "path", cfg.Search.IndexPath, "document_count", count)

		searchIndex = bleveIndex
		indexer = bleveIndex
	} else {
		log.Info("Search index disabled")
	}

	// Initialize services
	articleService := service.NewArticleService(articleRepo, categoryRepo, tagRepo, indexer, log)
	reactionService := service.NewReactionService(articleRepo, reactionRepo, log)
	searchService := service.NewSearchService(searchIndex, articleRepo, log)
	resolver := listing.NewResolver(articleRepo, categoryRepo, tagRepo, log)

	// Initialize handlers
	articleHandler := handlers.NewArticleHandler(articleService, reactionService, resolver, log)
	searchHandler := handlers.NewSearchHandler(searchService, log)
	healthHandler := handlers.NewHealthHandler(db, searchIndex, log)

	webHandler, err := web.NewWebHandler(articleService, reactionService, resolver, web.NewSite(cfg.Site), log)
	if err != nil {
		log.Fatal("Failed to load templates", "error", err)
	}

	// Initialize router
	router := api.NewRouter(
		articleHandler,
		searchHandler,
		healthHandler,
		webHandler,
		cfg,
		log,
	)

	engine, err := router.Setup()
	if err != nil {
		log.Fatal("Failed to set up router", "error", err)
	}
	defer router.Close()

	// Create HTTP server
	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed", "error", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped gracefully")
}
