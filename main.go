package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	"github.com/primalspirits/signup-page/pkg/api"
	"github.com/primalspirits/signup-page/pkg/clients/brevo"
	"github.com/primalspirits/signup-page/pkg/clients/sanity"
	"github.com/primalspirits/signup-page/pkg/config"
	"github.com/primalspirits/signup-page/pkg/middleware"
	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/observability"
	"github.com/primalspirits/signup-page/pkg/page"
	"github.com/primalspirits/signup-page/pkg/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err, "required", config.RequiredKeys)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a server error. Deferred cleanup,
// including the tracer flush, runs on every return path.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("error initializing tracing: %w", err)
	}
	defer shutdownTracer(context.Background())

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize API clients
	brevoClient := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoBaseURL, &http.Client{Timeout: cfg.ProviderTimeout})
	contentClient, err := newContentClient(cfg)
	if err != nil {
		return fmt.Errorf("error initializing content source: %w", err)
	}

	// Initialize services
	signupService := services.NewSignupService(
		brevoClient,
		services.SignupConfig{APIKey: cfg.BrevoAPIKey, ListID: cfg.BrevoListID},
		metrics,
	)
	handlers := api.NewHandlers(signupService, page.NewRenderer(contentClient, metrics),
		api.WithMaxStreams(cfg.MaxSlideshowStreams),
		api.WithContentRefresh(cfg.ContentRefresh),
	)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware(observability.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins...))

	api.SetupRoutes(router, handlers, promhttp.Handler(), middleware.RateLimit(cfg.RateLimitPerMinute, metrics))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port, "list_id", cfg.BrevoListID, "sanity", cfg.UseSanity())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newContentClient picks Sanity when a project is configured and the in-memory
// store otherwise, seeded from CONTENT_FIXTURE when set.
func newContentClient(cfg *config.Config) (sanity.Client, error) {
	if cfg.UseSanity() {
		return sanity.NewClient(sanity.Config{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			UseCDN:     cfg.SanityUseCDN,
			Token:      cfg.SanityToken,
		}, &http.Client{Timeout: cfg.ProviderTimeout})
	}

	store, err := sanity.NewMemoryStore()
	if err != nil {
		return nil, err
	}
	if cfg.ContentFixture != "" {
		if err := store.LoadFixture(cfg.ContentFixture); err != nil {
			return nil, err
		}
		return store, nil
	}
	slog.Warn("no content source configured, serving default copy")
	if err := store.PutSignupPage(&models.PageContent{Gallery: []models.GalleryImage{}}); err != nil {
		return nil, err
	}
	return store, nil
}
