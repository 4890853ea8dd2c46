package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/sweeper.go -pkg mocks -skip-ensure -fmt goimports . Sweeper
//go:generate moq -out mocks/importer.go -pkg mocks -skip-ensure -fmt goimports . Importer
//go:generate moq -out mocks/forwarder.go -pkg mocks -skip-ensure -fmt goimports . Forwarder

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
	defaultRSSLimit  = 100
)

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	sweeper   Sweeper
	importer  Importer
	forwarder Forwarder
	metrics   Metrics
	generator *feed.Generator
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	GetStats(ctx context.Context) (domain.Stats, error)
	GetPosts(ctx context.Context, filter domain.PostFilter) ([]domain.RawPost, error)
	GetLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	GetLead(ctx context.Context, id int64) (*domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	UpdateLeadDraft(ctx context.Context, id int64, subject, body, contactEmail string) error
	GetOutreach(ctx context.Context, limit, offset int) ([]domain.Outreach, error)
	CreateOutreach(ctx context.Context, o *domain.Outreach) error
	GetSettings(ctx context.Context) (domain.Settings, error)
	SetSettings(ctx context.Context, values map[string]string) error
}

// Sweeper starts background sweeps and reports their progress
type Sweeper interface {
	StartCollect(platforms []string, limit int) string
	StartAnalyze(limit int) string
	Status(taskType string) domain.TaskStatus
	AllStatuses() []domain.TaskStatus
}

// Importer stores manually supplied posts
type Importer interface {
	ImportText(ctx context.Context, text, author, label string) (domain.CollectionStats, error)
	ImportCSV(ctx context.Context, r io.Reader) (domain.CollectionStats, error)
}

// Forwarder sends a payload to a webhook without waiting for it
type Forwarder interface {
	Forward(url string, payload any)
}

// Metrics instruments requests and exposes collected metrics
type Metrics interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params contains server dependencies
type Params struct {
	Config    ConfigProvider
	Database  Database
	Sweeper   Sweeper
	Importer  Importer
	Forwarder Forwarder
	Metrics   Metrics // optional
	BaseURL   string  // public url used in RSS links
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		config:    params.Config,
		db:        params.Database,
		sweeper:   params.Sweeper,
		importer:  params.Importer,
		forwarder: params.Forwarder,
		metrics:   params.Metrics,
		generator: feed.NewGenerator(params.BaseURL),
		version:   params.Version,
		debug:     params.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(rest.AppInfo("socials", "clapiton", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(5 * 1024 * 1024)) // csv imports
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /posts", s.postsHandler)

		r.HandleFunc("GET /leads", s.leadsHandler)
		r.HandleFunc("GET /leads/{id}", s.leadHandler)
		r.HandleFunc("PUT /leads/{id}/status", s.leadStatusHandler)
		r.HandleFunc("PUT /leads/{id}/draft", s.leadDraftHandler)

		r.HandleFunc("GET /outreach", s.outreachHandler)
		r.HandleFunc("POST /outreach/generate", s.outreachDraftHandler)
		r.HandleFunc("POST /outreach/log", s.outreachLogHandler)
		r.HandleFunc("POST /outreach/send", s.outreachSendHandler)

		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.updateSettingsHandler)

		r.HandleFunc("POST /collect", s.collectHandler)
		r.HandleFunc("POST /analyze", s.analyzeHandler)
		r.HandleFunc("GET /task-status", s.taskStatusHandler)
		r.HandleFunc("POST /import", s.importHandler)
		r.HandleFunc("POST /webhook/lead", s.webhookLeadHandler)
	})

	s.router.HandleFunc("GET /rss/leads", s.rssLeadsHandler)

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics.Handler())
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// decodeJSON reads request body into v, empty body leaves v untouched
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

// pagination reads limit and offset query params with defaults and bounds
func pagination(r *http.Request) (limit, offset int) {
	limit = queryInt(r, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	return limit, max(queryInt(r, "offset", 0), 0)
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return def
	}
	return v
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid lead ID")
	}
	return id, nil
}
