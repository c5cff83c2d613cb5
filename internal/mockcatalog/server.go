package mockcatalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// API paths served by the mock.
const (
	ListPath = "/api/v2/pokemon"

	defaultLimit = 20
	maxLimit     = 200
)

// Options configure the mock server.
type Options struct {
	// FailEvery makes every Nth list request answer 503. Zero disables it.
	FailEvery int
	Logger    *slog.Logger
}

// Server holds the HTTP server dependencies.
type Server struct {
	store     *Store
	router    chi.Router
	metrics   *Metrics
	logger    *slog.Logger
	failEvery int
	listCalls atomic.Int64
}

// New creates a new mock catalog server over store.
func New(store *Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:     store,
		router:    chi.NewRouter(),
		metrics:   NewMetrics(),
		logger:    logger,
		failEvery: opts.FailEvery,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.StripSlashes)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route(ListPath, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{ref}", s.handleDetail)
	})

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
}

// requestLogger logs each request through slog with chi's request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
		)
	})
}

// --- Handlers ---

type listPayload struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []resource `json:"results"`
}

type resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type detailPayload struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Abilities []abilitySlot `json:"abilities"`
	Types     []typeSlot    `json:"types"`
}

type abilitySlot struct {
	Ability  resource `json:"ability"`
	IsHidden bool     `json:"is_hidden"`
	Slot     int      `json:"slot"`
}

type typeSlot struct {
	Slot int      `json:"slot"`
	Type resource `json:"type"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.injectFault(w, r) {
		return
	}
	if s.failEvery > 0 && s.listCalls.Add(1)%int64(s.failEvery) == 0 {
		s.metrics.faults.Inc()
		respondError(w, http.StatusServiceUnavailable, "scheduled failure")
		return
	}

	q := r.URL.Query()
	offset, err := queryInt(q, "offset", 0)
	if err != nil || offset < 0 {
		respondError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	limit, err := queryInt(q, "limit", defaultLimit)
	if err != nil || limit <= 0 {
		respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	limit = min(limit, maxLimit)
	search := q.Get("search")

	total, err := s.store.Count(r.Context(), search)
	if err != nil {
		s.logger.Error("count failed", "search", search, "error", err)
		respondError(w, http.StatusInternalServerError, "count failed")
		return
	}
	entries, err := s.store.List(r.Context(), search, offset, limit)
	if err != nil {
		s.logger.Error("list failed", "search", search, "error", err)
		respondError(w, http.StatusInternalServerError, "list failed")
		return
	}

	base := baseURL(r)
	payload := listPayload{Count: total, Results: make([]resource, 0, len(entries))}
	for _, e := range entries {
		payload.Results = append(payload.Results, resource{Name: e.Name, URL: entryURL(base, e.ID)})
	}
	if offset+limit < total {
		next := pageURL(base, search, offset+limit, limit)
		payload.Next = &next
	}
	if offset > 0 {
		prev := pageURL(base, search, max(offset-limit, 0), limit)
		payload.Previous = &prev
	}

	s.metrics.pageSize.Observe(float64(len(payload.Results)))
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	if s.injectFault(w, r) {
		return
	}
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "ref"))
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.logger.Error("detail lookup failed", "ref", chi.URLParam(r, "ref"), "error", err)
		respondError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	base := baseURL(r)
	payload := detailPayload{ID: e.ID, Name: e.Name, Height: e.Height, Weight: e.Weight}
	for i, a := range e.Abilities {
		payload.Abilities = append(payload.Abilities, abilitySlot{
			Ability: resource{Name: a, URL: base + "/api/v2/ability/" + a + "/"},
			Slot:    i + 1,
		})
	}
	for i, t := range e.Types {
		payload.Types = append(payload.Types, typeSlot{
			Slot: i + 1,
			Type: resource{Name: t, URL: base + "/api/v2/type/" + t + "/"},
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

// injectFault answers with the status in ?fail=<status> when present.
func (s *Server) injectFault(w http.ResponseWriter, r *http.Request) bool {
	raw := r.URL.Query().Get("fail")
	if raw == "" {
		return false
	}
	status, err := strconv.Atoi(raw)
	if err != nil || status < 400 || status > 599 {
		respondError(w, http.StatusBadRequest, "fail must be a 4xx or 5xx status")
		return true
	}
	s.metrics.faults.Inc()
	respondError(w, status, "injected failure")
	return true
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func queryInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func entryURL(base string, id int) string {
	return fmt.Sprintf("%s%s/%d/", base, ListPath, id)
}

func pageURL(base, search string, offset, limit int) string {
	values := url.Values{}
	values.Set("offset", strconv.Itoa(offset))
	values.Set("limit", strconv.Itoa(limit))
	if search != "" {
		values.Set("search", search)
	}
	return base + ListPath + "?" + values.Encode()
}
