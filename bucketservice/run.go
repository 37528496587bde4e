// Package bucketservice wires configuration, store, identity and HTTP
// transport into the running bucket-list service.
package bucketservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/bucketbuddy/bucketbuddy/internal/api"
	"github.com/bucketbuddy/bucketbuddy/internal/api/recovery"
	"github.com/bucketbuddy/bucketbuddy/internal/auth"
	"github.com/bucketbuddy/bucketbuddy/internal/config"
	"github.com/bucketbuddy/bucketbuddy/internal/factory"
	"github.com/bucketbuddy/bucketbuddy/internal/health"
	"github.com/bucketbuddy/bucketbuddy/internal/identity"
	"github.com/bucketbuddy/bucketbuddy/internal/logger"
	"github.com/bucketbuddy/bucketbuddy/internal/services"
	"github.com/bucketbuddy/bucketbuddy/internal/session"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// Run starts the bucket service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("bucket-service")

	// .env is optional; the environment wins when both are present.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Bool("auth_enabled", cfg.AuthEnabled).
		Int("port", cfg.Port).
		Msg("Bucket service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("store close failed")
		}
	}()

	authorizer, gh := buildIdentity(ctx, cfg, log)
	router := BuildRouter(st, authorizer, gh, cfg)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildIdentity selects the identity boundary. With auth disabled every
// request resolves to the fixed dev user and no GitHub routes exist.
func buildIdentity(ctx context.Context, cfg *config.Config, log zerolog.Logger) (auth.Authorizer, *identity.GitHubProvider) {
	if !cfg.AuthEnabled {
		log.Warn().Msg("auth disabled; all requests resolve to the dev user")
		return auth.NewDevAuthorizer(), nil
	}

	sessions := session.NewMemoryStore()
	go sessions.StartJanitor(ctx, time.Hour)

	signer := auth.NewCookieSigner(cfg.SessionSecret)
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	gh := identity.NewGitHubProvider(identity.Config{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		CallbackURL:  cfg.CallbackURL,
	}, signer, sessions, ttl, log)

	return auth.NewSessionAuthorizer(signer, sessions), gh
}

// BuildRouter wires HTTP routes to handlers. Item routes sit behind the
// auth gate; everything unmatched falls through to static assets.
func BuildRouter(st store.Store, authorizer auth.Authorizer, gh *identity.GitHubProvider, cfg *config.Config) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	authHandler := api.NewAuthHandler(authorizer)
	root.HandleFunc("/me", authHandler.Me).Methods("GET")
	root.HandleFunc("/ping", api.Ping).Methods("GET")

	healthHandler := api.NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	if gh != nil {
		root.HandleFunc("/auth/github", gh.Login).Methods("GET")
		root.HandleFunc("/auth/github/callback", gh.Callback).Methods("GET")
		root.HandleFunc("/logout", gh.Logout).Methods("POST")
	}

	itemSvc := services.NewItemService(st)
	items := api.NewItemHandler(itemSvc)
	protected := root.PathPrefix("/results").Subrouter()
	protected.Use(auth.Middleware(authorizer))
	protected.HandleFunc("", items.ListItems).Methods("GET")
	protected.HandleFunc("", items.CreateItem).Methods("POST")
	protected.HandleFunc("/{id}", items.CompleteItem).Methods("PUT")
	protected.HandleFunc("/{id}", items.DeleteItem).Methods("DELETE")

	root.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods("GET")
	return root
}

func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// waitUntilHealthy blocks until the store reports healthy or the startup
// window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := cfg.HealthIntervalSeconds * 2
	if timeoutSeconds < 30 {
		timeoutSeconds = 30
	}
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: store not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
