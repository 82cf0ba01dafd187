package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"phonicscode/internal/assets"
	"phonicscode/internal/config"
	"phonicscode/internal/database"
	"phonicscode/internal/game"
	"phonicscode/internal/handlers"
	"phonicscode/internal/quiz"
	"phonicscode/internal/repository"
	"phonicscode/internal/security"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Quiz data is fetched lazily from the remote workbooks on first use.
	store := quiz.NewStore(nil, cfg.QuizDataURL, cfg.UnitDataURL)
	resolver := assets.NewResolver(cfg.AssetBaseURL)

	sessionRepo := repository.NewSessionRepository(db)
	sessions := handlers.NewRegistry(cfg.SessionDuration)
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	resolveLimiter := security.NewRateLimiter(60, time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(cfg.SessionSecret, cfg.SessionDuration)
	menuHandler := handlers.NewMenuHandler(store, templates)
	resultsHandler := handlers.NewResultsHandler(sessionRepo, templates)
	builderHandler := handlers.NewGameHandler(game.Builder, cfg, store, resolver,
		sessions, sessionRepo, csrf, resolveLimiter, templates)
	shadowHandler := handlers.NewGameHandler(game.Shadow, cfg, store, resolver,
		sessions, sessionRepo, csrf, resolveLimiter, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Menu routes
	mux.HandleFunc("GET /", middleware.PlayerSession(menuHandler.Home))
	mux.HandleFunc("GET /select-unit", middleware.PlayerSession(menuHandler.SelectUnit))
	mux.HandleFunc("GET /select-unit/{level}", middleware.PlayerSession(menuHandler.SelectUnit))
	mux.HandleFunc("GET /select-play", middleware.PlayerSession(menuHandler.SelectPlay))
	mux.HandleFunc("GET /select-play/{level}/{unit}", middleware.PlayerSession(menuHandler.SelectPlay))
	mux.HandleFunc("GET /results", middleware.PlayerSession(resultsHandler.ShowResults))
	mux.HandleFunc("GET /healthz", menuHandler.Healthz)

	// Game routes
	registerGameRoutes(mux, middleware, builderHandler)
	registerGameRoutes(mux, middleware, shadowHandler)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupIdleSessions(sessions)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// registerGameRoutes wires one game's handler under its base path.
func registerGameRoutes(mux *http.ServeMux, middleware *handlers.Middleware, h *handlers.GameHandler) {
	base := h.BasePath()

	mux.HandleFunc("GET "+base, middleware.PlayerSession(h.Play))
	mux.HandleFunc("GET "+base+"/{level}/{unit}/{problem}", middleware.PlayerSession(h.Play))
	mux.HandleFunc("POST "+base+"/tutorial/dismiss", middleware.PlayerSession(h.DismissTutorial))
	mux.HandleFunc("POST "+base+"/intro/start", middleware.PlayerSession(h.StartUnit))
	mux.HandleFunc("POST "+base+"/resolve", middleware.PlayerSession(h.Resolve))
	mux.HandleFunc("POST "+base+"/exit", middleware.PlayerSession(h.Exit))
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	// Define template functions
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupIdleSessions periodically closes abandoned game controllers
func cleanupIdleSessions(sessions *handlers.Registry) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if removed := sessions.CleanupExpired(); removed > 0 {
			log.Printf("Closed %d idle game sessions", removed)
		}
	}
}
