// Package httpapi exposes the REST surface of the task manager: the auth
// endpoints, the protected task endpoints, and the access-token middleware
// guarding them.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/logging"
	"github.com/AnandRajBind/Task-Management/internal/server/auth"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/AnandRajBind/Task-Management/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// SessionManager is the slice of the session service the handlers need.
type SessionManager interface {
	Register(ctx context.Context, email, password, name string) (*models.User, *services.AuthTokens, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
}

// TaskManager is the slice of the task service the handlers need.
type TaskManager interface {
	Create(ctx context.Context, userID, title, description, status string) (*models.Task, error)
	List(ctx context.Context, userID string, query services.TaskQuery) (*services.TaskList, error)
	Get(ctx context.Context, id, userID string) (*models.Task, error)
	Update(ctx context.Context, id, userID string, update services.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id, userID string) error
	ToggleStatus(ctx context.Context, id, userID string) (*models.Task, error)
}

type Server struct {
	address  string
	logger   logging.Logger
	sessions SessionManager
	tasks    TaskManager
	codec    *auth.Codec
}

func NewServer(address string, l logging.Logger, sessions SessionManager, tasks TaskManager, codec *auth.Codec) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "httpapi"),
		sessions: sessions,
		tasks:    tasks,
		codec:    codec,
	}
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeData(w, http.StatusOK, "OK", nil)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(s.accessTokenMiddleware)
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Get("/{id}", s.handleGetTask)
			r.Patch("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
			r.Patch("/{id}/toggle", s.handleToggleTask)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

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
