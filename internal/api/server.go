// Package api serves the attendance engine over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/store"
)

// Options configures a Server. Store is required; zero values elsewhere
// fall back to defaults.
type Options struct {
	Store        store.Store
	Location     *time.Location
	Clock        func() time.Time
	HistoryLimit int
	// Secret enables HS256 bearer token checks on /api/v1.
	Secret         string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server holds the HTTP handlers. Writes are serialized so concurrent
// requests cannot interleave a read-modify-write of the same record.
type Server struct {
	store   store.Store
	loc     *time.Location
	clock   func() time.Time
	limit   int
	origins []string
	logger  *slog.Logger
	auth    *jwtauth.JWTAuth

	writeMu sync.Mutex
}

func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		loc:     opts.Location,
		clock:   opts.Clock,
		limit:   opts.HistoryLimit,
		origins: opts.AllowedOrigins,
		logger:  opts.Logger,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if len(s.origins) == 0 {
		s.origins = []string{"http://localhost:3000"}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if opts.Secret != "" {
		s.auth = NewAuth(opts.Secret)
	}
	return s
}

func (s *Server) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Server) navigator() stats.Navigator {
	return stats.Navigator{Clock: s.now, Limit: s.limit}
}

// Router builds the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))
	r.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Route("/api/v1", func(r chi.Router) {
		if s.auth != nil {
			r.Use(jwtauth.Verifier(s.auth))
			r.Use(authRequired)
		}

		r.Get("/stats", s.getStats)

		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.listRecords)
			r.Route("/{day}", func(r chi.Router) {
				r.Get("/", s.getRecord)
				r.Delete("/", s.deleteRecord)
				r.Post("/checkin", s.checkIn)
				r.Post("/checkout", s.checkOut)
				r.Post("/punch", s.punch)
			})
		})

		r.Route("/workdays/{year}/{week}", func(r chi.Router) {
			r.Get("/", s.getWorkdays)
			r.Put("/{weekday}", s.putWorkday)
		})

		r.Get("/export", s.export)
		r.Post("/import", s.importData)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr, "auth", s.auth != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// NewLogger returns the JSON request logger used by the server.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(true)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(slog.String("app", "funnytime"))
}
