package api

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"ytsummarizer/internal/app"
)

const (
	serviceName     = "ytsummarizer"
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 10 * time.Second
)

//go:embed web/index.html
var indexHTML []byte

// Summarizer runs the transcript and summary pipeline for one video.
type Summarizer interface {
	Summarize(ctx context.Context, videoURL string) (*app.Result, error)
}

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	summarizer Summarizer
	validate   *validator.Validate
	router     chi.Router
	opts       Options
}

func NewServer(summarizer Summarizer, opts Options) *Server {
	srv := &Server{
		summarizer: summarizer,
		validate:   validator.New(),
		opts:       opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)

	r.Get("/", srv.handleIndex)
	r.Get("/health", srv.handleHealth)
	r.Post("/summarize", srv.handleSummarize)
	r.Post("/api/summarize", srv.handleSummarize)

	srv.router = r
	return srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", s.opts.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
