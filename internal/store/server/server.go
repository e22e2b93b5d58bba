package server

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/LangApex/alumni-platform/internal/store/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their json names so error messages carry
// column names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Options configures a Server.
type Options struct {
	Addr           string
	APIKey         string
	AllowedOrigins []string
}

type Server struct {
	Server *http.Server
	log    *zerolog.Logger
	db     *sql.DB
	apiKey string
	tables map[string]resource
}

func New(opts Options, db *sql.DB, log *zerolog.Logger) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:         opts.Addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		log:    log,
		apiKey: opts.APIKey,
		tables: map[string]resource{
			"events":  eventsTable(repository.NewEventRepository(db, *log)),
			"gallery": galleryTable(repository.NewGalleryRepository(db, *log)),
		},
	}

	r := mux.NewRouter()
	s.setupRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"apikey", "Authorization", "Content-Type", "Prefer", "Accept"},
		AllowCredentials: false,
	})
	s.Server.Handler = c.Handler(otelhttp.NewHandler(r, "record-store"))

	return s
}

func (s *Server) setupRoutes(r *mux.Router) {
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	rest := r.PathPrefix("/rest/v1").Subrouter()
	rest.Use(s.apiKeyMiddleware)
	rest.HandleFunc("/{table}", s.listRows).Methods("GET")
	rest.HandleFunc("/{table}", s.insertRows).Methods("POST")
	rest.HandleFunc("/{table}", s.updateRows).Methods("PATCH")
	rest.HandleFunc("/{table}", s.deleteRows).Methods("DELETE")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

// loggingMiddleware logs all incoming requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(rw, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Str("duration", time.Since(start).String()).
			Msg("Request processed")
	})
}

// apiKeyMiddleware accepts the key in the apikey header or as a bearer token.
func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("apikey")
		if key == "" {
			key, _ = strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			writeError(w, newAPIError(http.StatusUnauthorized, codeBadAPIKey, "Invalid API key"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.log.Error().Msg("Database is not initialized")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": "database not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": "database connection failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) table(w http.ResponseWriter, r *http.Request) (string, resource, bool) {
	name := mux.Vars(r)["table"]
	t, ok := s.tables[name]
	if !ok {
		writeError(w, newAPIError(http.StatusNotFound, codeUnknownTable,
			"Could not find the table 'public.%s' in the schema cache", name))
	}
	return name, t, ok
}

func (s *Server) listRows(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	q, apiErr := parseListQuery(name, r.URL.Query(), t.hasColumn)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	rows, err := t.list(r.Context(), q)
	if err != nil {
		s.fail(w, name, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) insertRows(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, newAPIError(http.StatusRequestEntityTooLarge, codeInvalidBody, "request body too large"))
		return
	}

	rows, err := t.insert(r.Context(), body)
	if err != nil {
		s.fail(w, name, "insert", err)
		return
	}

	if !prefersRepresentation(r) {
		w.WriteHeader(http.StatusCreated)
		return
	}
	writeJSON(w, http.StatusCreated, rows)
}

func (s *Server) updateRows(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	id, apiErr := s.requireID(r, name)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, newAPIError(http.StatusRequestEntityTooLarge, codeInvalidBody, "request body too large"))
		return
	}

	rows, err := t.update(r.Context(), id, body)
	if err != nil {
		s.fail(w, name, "update", err)
		return
	}

	if !prefersRepresentation(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// deleteRows answers 204 whether or not a row matched.
func (s *Server) deleteRows(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	id, apiErr := s.requireID(r, name)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	if err := t.delete(r.Context(), id); err != nil {
		s.fail(w, name, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireID returns the id=eq. filter that PATCH and DELETE must carry.
func (s *Server) requireID(r *http.Request, table string) (string, *apiError) {
	values := r.URL.Query()
	if !values.Has("id") {
		return "", newAPIError(http.StatusBadRequest, codeMissingFilter,
			"%s on %s requires a WHERE clause", r.Method, table)
	}
	id, ok := strings.CutPrefix(values.Get("id"), "eq.")
	if !ok || id == "" {
		return "", newAPIError(http.StatusBadRequest, codeBadQuery, "only eq filters on id are supported")
	}
	return id, nil
}

// fail writes client errors as they are and hides storage errors behind a
// generic 500.
func (s *Server) fail(w http.ResponseWriter, table, op string, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr)
		return
	}
	s.log.Error().Err(err).Str("table", table).Str("op", op).Msg("Storage operation failed")
	writeError(w, newAPIError(http.StatusInternalServerError, codeInternal, "internal error"))
}
