// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/catalog"
	"github.com/joostry/joostry/internal/config"
	"github.com/joostry/joostry/internal/handler"
	"github.com/joostry/joostry/internal/logging"
	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/presentation"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/scheduler"
	"github.com/joostry/joostry/internal/session"
	"github.com/joostry/joostry/internal/settings"
	"github.com/joostry/joostry/internal/store"
	"github.com/joostry/joostry/internal/version"
	"github.com/joostry/joostry/web"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, GET /new, POST /, GET /{id}, PUT /{id}, POST /{id}, DELETE /{id}
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + handler.RouteParamID
	r.Get(base, h.List)
	if h.NewForm != nil {
		r.Get(base+handler.RouteSuffixNew, h.NewForm)
	}
	r.Post(base, h.Create)
	if h.EditForm != nil {
		r.Get(baseID, h.EditForm)
	}
	if h.Update != nil {
		r.Put(baseID, h.Update)
		r.Post(baseID, h.Update) // HTML forms can't send PUT
	}
	r.Delete(baseID, h.Delete)
	r.Post(baseID+"/delete", h.Delete) // HTML forms can't send DELETE
}

// registerSettingsRoutes registers a settings page with Get, Put, and Post (for HTML forms).
func registerSettingsRoutes(r chi.Router, route string, get, update http.HandlerFunc) {
	r.Get(route, get)
	r.Put(route, update)
	r.Post(route, update) // HTML forms can't send PUT
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Joostry - juice storefront and admin dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_SESSION_SECRET  Session encryption key (min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_DB_PATH         SQLite database path\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_SITE_URL        Canonical site URL (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JOOSTRY_DO_SEED         Seed demo storefront content (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("joostry %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Initialize the content store. When unconfigured the storefront still
	// starts: resolvers serve hardcoded defaults and the admin is disabled.
	var db *sql.DB
	if cfg.StoreConfigured() {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		slog.Info("initializing database", "path", cfg.DBPath)
		db, err = store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}(db)

		slog.Info("running database migrations")
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")

		// Upgrade logger to also write WARN and ERROR logs to the event log
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
		eventLogHandler := logging.NewEventLogHandler(textHandler, db)
		logger = slog.New(eventLogHandler)
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")

		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if cfg.DoSeed {
			if err := store.SeedDemo(ctx, db); err != nil {
				return fmt.Errorf("seeding demo content: %w", err)
			}
		}
	} else {
		slog.Warn("content store unconfigured, serving default storefront",
			"db_path_set", cfg.DBPath != "",
			"session_secret_set", cfg.SessionSecret != "",
		)
	}

	var queries *store.Queries
	if db != nil {
		queries = store.New(db)
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	middleware.SetSessionManager(sessionManager)
	sessionStore := "memory"
	if db != nil {
		sessionStore = "sqlite"
	}
	slog.Info("session manager initialized", "store", sessionStore)

	// Initialize cache backend and manager
	cacheConfig := cache.CacheConfig{
		Type:            cache.BackendMemory,
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
	if cfg.UseRedisCache() {
		cacheConfig.Type = cache.BackendRedis
	}
	backend, err := cache.NewCache(cacheConfig)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	cacheManager := cache.NewManager(backend)
	defer cacheManager.Stop()
	if _, isRedis := backend.(*cache.RedisCache); isRedis {
		slog.Info("cache manager initialized", "backend", "redis", "url", cache.SanitizeRedisURL(cfg.RedisURL))
	} else {
		slog.Info("cache manager initialized", "backend", "memory")
	}

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Event bus connects admin writes to cache invalidation and presentation
	eventBus := bus.New(logger)

	// Presentation head and settings resolvers
	head := presentation.NewHead()
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	settingsService := settings.NewService(queries, cacheManager, head, eventBus, cfg.SiteURL, cacheTTL)
	if res := settingsService.ResolveSite(ctx); res.Err != nil {
		slog.Warn("initial site settings resolution failed, using defaults", "error", res.Err)
	} else {
		slog.Info("site settings resolved", "site", res.Settings.SiteName)
	}

	catalogFetcher := catalog.NewFetcher(queries, cacheManager, eventBus, cacheTTL)

	// Start the event log retention scheduler
	if db != nil {
		sched := scheduler.New(db, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)        // Redirect /path/ to /path (301)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize handlers
	frontendHandler := handler.NewFrontendHandler(db, renderer, settingsService, catalogFetcher)
	healthHandler := handler.NewHealthHandler(db)

	// Health check route (public)
	r.Get(handler.RouteHealth, healthHandler.Health)

	// Crawler-facing text surfaces bypass the maintenance gate: robots.txt
	// flips to disallow-all on its own while maintenance mode is on.
	r.Get("/sitemap.xml", frontendHandler.Sitemap)
	r.Get("/robots.txt", frontendHandler.Robots)
	r.Get("/.well-known/security.txt", frontendHandler.SecurityTxt)

	// Public frontend routes
	r.Group(func(r chi.Router) {
		r.Use(frontendHandler.Maintenance)
		if queries != nil {
			r.Use(middleware.OptionalLoadUser(queries))
		}
		r.Use(csrfMiddleware)

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteProducts, frontendHandler.Products)
		r.Get(handler.RouteProducts+handler.RouteParamSlug, frontendHandler.ProductDetail)
		r.Get(handler.RouteCategory, frontendHandler.CategoryProducts)
		r.Get(handler.RouteContact, frontendHandler.ContactForm)
		r.Post(handler.RouteContact, frontendHandler.ContactSubmit)
		r.Get(handler.RouteBlog, frontendHandler.Blog)
		r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.Page)
	})

	// Auth and admin routes require the content store
	if db != nil {
		authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
		adminHandler := handler.NewAdminHandler(db, renderer, cacheManager)
		catalogAdmin := handler.NewCatalogAdminHandler(db, renderer, eventBus)
		reviewAdmin := handler.NewReviewAdminHandler(db, renderer, eventBus)
		slidesAdmin := handler.NewSlidesAdminHandler(db, renderer, eventBus)
		settingsAdmin := handler.NewSettingsAdminHandler(db, renderer, eventBus)
		pagesAdmin := handler.NewPagesAdminHandler(db, renderer)
		messagesAdmin := handler.NewMessagesAdminHandler(db, renderer)

		// Auth routes (public, with CSRF and rate limiting)
		r.Group(func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Get(handler.RouteLogin, authHandler.LoginForm)
			r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
			r.Get(handler.RouteLogout, authHandler.Logout)
			r.Post(handler.RouteLogout, authHandler.Logout)
		})

		// Admin routes (protected with CSRF)
		r.Route("/admin", func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Use(middleware.Auth)
			r.Use(middleware.LoadUser(queries))
			r.Use(middleware.RequireAdmin)

			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Get(handler.RouteAdminEvents, adminHandler.Events)
			r.Get(handler.RouteAdminCache, adminHandler.Cache)
			r.Post(handler.RouteAdminCache+"/clear", adminHandler.CacheClear)

			// Catalog management
			registerCRUD(r, handler.RouteAdminProducts, crudHandlers{
				List: catalogAdmin.Products, NewForm: catalogAdmin.NewProductForm, Create: catalogAdmin.CreateProduct,
				EditForm: catalogAdmin.EditProductForm, Update: catalogAdmin.UpdateProduct, Delete: catalogAdmin.DeleteProduct,
			})
			r.Post(handler.RouteAdminProducts+handler.RouteParamID+"/toggle-active", catalogAdmin.ToggleProductActive)
			r.Post(handler.RouteAdminProducts+handler.RouteParamID+"/toggle-featured", catalogAdmin.ToggleProductFeatured)

			registerCRUD(r, handler.RouteAdminCategories, crudHandlers{
				List: catalogAdmin.Categories, NewForm: catalogAdmin.NewCategoryForm, Create: catalogAdmin.CreateCategory,
				EditForm: catalogAdmin.EditCategoryForm, Update: catalogAdmin.UpdateCategory, Delete: catalogAdmin.DeleteCategory,
			})
			r.Post(handler.RouteAdminCategories+handler.RouteParamID+"/toggle-active", catalogAdmin.ToggleCategoryActive)

			// Review moderation
			r.Get(handler.RouteAdminReviews, reviewAdmin.Reviews)
			r.Post(handler.RouteAdminReviews, reviewAdmin.CreateReview)
			r.Post(handler.RouteAdminReviews+handler.RouteParamID+"/approve", reviewAdmin.ApproveReview)
			r.Post(handler.RouteAdminReviews+handler.RouteParamID+"/reject", reviewAdmin.RejectReview)
			r.Post(handler.RouteAdminReviews+handler.RouteParamID+"/toggle-visible", reviewAdmin.ToggleReviewVisible)
			r.Delete(handler.RouteAdminReviews+handler.RouteParamID, reviewAdmin.DeleteReview)
			r.Post(handler.RouteAdminReviews+handler.RouteParamID+"/delete", reviewAdmin.DeleteReview)

			// Hero slider and slideshow images
			registerCRUD(r, handler.RouteAdminSlider, crudHandlers{
				List: slidesAdmin.SliderImages, Create: slidesAdmin.CreateSliderImage,
				Update: slidesAdmin.UpdateSliderImage, Delete: slidesAdmin.DeleteSliderImage,
			})
			r.Post(handler.RouteAdminSlider+handler.RouteParamID+"/toggle-active", slidesAdmin.ToggleSliderImageActive)

			registerCRUD(r, handler.RouteAdminSlideshow, crudHandlers{
				List: slidesAdmin.SlideshowImages, Create: slidesAdmin.CreateSlideshowImage,
				Update: slidesAdmin.UpdateSlideshowImage, Delete: slidesAdmin.DeleteSlideshowImage,
			})
			r.Post(handler.RouteAdminSlideshow+handler.RouteParamID+"/toggle-active", slidesAdmin.ToggleSlideshowImageActive)

			// Navigation menu items
			registerCRUD(r, handler.RouteAdminMenu, crudHandlers{
				List: settingsAdmin.MenuItems, Create: settingsAdmin.CreateMenuItem,
				Update: settingsAdmin.UpdateMenuItem, Delete: settingsAdmin.DeleteMenuItem,
			})
			r.Post(handler.RouteAdminMenu+handler.RouteParamID+"/toggle-visible", settingsAdmin.ToggleMenuItemVisible)

			// Content pages
			registerCRUD(r, handler.RouteAdminPages, crudHandlers{
				List: pagesAdmin.Pages, NewForm: pagesAdmin.NewPageForm, Create: pagesAdmin.CreatePage,
				EditForm: pagesAdmin.EditPageForm, Update: pagesAdmin.UpdatePage, Delete: pagesAdmin.DeletePage,
			})

			// Contact messages
			r.Get(handler.RouteAdminMessages, messagesAdmin.Messages)
			r.Get(handler.RouteAdminMessages+"/{publicID}", messagesAdmin.Message)
			r.Delete(handler.RouteAdminMessages+"/{publicID}", messagesAdmin.DeleteMessage)
			r.Post(handler.RouteAdminMessages+"/{publicID}/delete", messagesAdmin.DeleteMessage)

			// Site configuration
			registerSettingsRoutes(r, handler.RouteAdminSettings, settingsAdmin.SiteSettingsForm, settingsAdmin.SaveSiteSettings)
			registerSettingsRoutes(r, handler.RouteAdminSettings+"/header", settingsAdmin.HeaderSettingsForm, settingsAdmin.SaveHeaderSettings)
			registerSettingsRoutes(r, handler.RouteAdminSettings+"/footer", settingsAdmin.FooterSettingsForm, settingsAdmin.SaveFooterSettings)
			registerSettingsRoutes(r, handler.RouteAdminSettings+"/home", settingsAdmin.HomeSections, settingsAdmin.SaveHomeSection)
			registerSettingsRoutes(r, handler.RouteAdminSettings+"/contact", settingsAdmin.ContactSettingsForm, settingsAdmin.SaveContactSettings)
			registerSettingsRoutes(r, handler.RouteAdminSettings+"/slideshow", settingsAdmin.SlideshowSettingsForm, settingsAdmin.SaveSlideshowSettings)
		})
	} else {
		slog.Warn("admin dashboard disabled: content store unconfigured")
	}

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	// Static assets: cache for 1 year (31536000 seconds)
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/dist/*", staticHandler)

	// 404 Not Found handler renders the storefront 404 page
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		frontendHandler.NotFound(w, req)
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Mitigates slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
