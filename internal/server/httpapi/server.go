// Package httpapi is the thin inbound adapter: it translates HTTP requests
// into service invocations and maps results back to status codes. All
// decision logic lives in the services package.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
)

// AuthService is the slice of the auth service the adapter invokes.
type AuthService interface {
	Register(ctx context.Context, req services.RegisterRequest) (models.Outcome, error)
	Login(ctx context.Context, req services.LoginRequest) (string, error)
}

// ProfileService is the slice of the profile service the adapter invokes.
type ProfileService interface {
	ResolveAccountID(claims models.ClaimSet) (string, bool)
	GetProfile(ctx context.Context, accountID string) (*models.Account, error)
	UpdateProfile(ctx context.Context, accountID, assetRef string, uploadedAt time.Time) (services.UpdateResult, error)
}

// Storage stores uploaded files and serves download URLs for stored keys.
type Storage interface {
	Upload(ctx context.Context, body io.Reader) (string, error)
	PresignGetURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	auth      AuthService
	profile   ProfileService
	storage   Storage
	jwtSecret []byte
	metrics   *Collector
}

func NewServer(address string, l logging.Logger, as AuthService, ps ProfileService, st Storage, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		auth:      as,
		profile:   ps,
		storage:   st,
		jwtSecret: []byte(secretKey),
		metrics:   NewCollector(),
	}
}

// Router builds the route table. Split from Run so tests can drive the
// handlers through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.metrics.metricsMiddleware)

	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)

	r.Route("/api/user", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/profile", s.handleGetProfile)
		r.Post("/profile", s.handleUpdateProfile)
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
