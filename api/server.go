package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"asset-brain/config"
	"asset-brain/metrics"
	"asset-brain/services"
	"asset-brain/storage"
	"asset-brain/utils"
)

// Server is the HTTP front end of the portfolio.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger

	properties  *services.PropertyService
	maintenance *services.MaintenanceService
	documents   *services.DocumentService
	analytics   *services.AnalyticsService
	query       *services.QueryService
}

// NewServer wires every service over store.
func NewServer(cfg *config.Config, logger *utils.Logger, store *storage.Store) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		properties:  services.NewPropertyService(store, store, logger),
		maintenance: services.NewMaintenanceService(store, logger),
		documents:   services.NewDocumentService(store, logger),
		analytics:   services.NewAnalyticsService(store, logger),
		query:       services.NewQueryService(store, logger),
	}
}

// Routes returns the full handler chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)

	// Properties
	mux.HandleFunc("GET /api/properties", s.handleListProperties)
	mux.HandleFunc("POST /api/properties", s.handleCreateProperty)
	mux.HandleFunc("GET /api/properties/{id}", s.handleGetProperty)
	mux.HandleFunc("PUT /api/properties/{id}", s.handleUpdateProperty)

	// Maintenance
	mux.HandleFunc("GET /api/maintenance", s.handleListIssues)
	mux.HandleFunc("POST /api/maintenance", s.handleCreateIssue)
	mux.HandleFunc("PUT /api/maintenance/{id}", s.handleUpdateIssue)

	// Questions, documents, analytics
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/documents", s.handleListDocuments)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.Handle("GET /metrics", metrics.Handler())

	return s.withRequestID(s.withCORS(s.withLogging(mux)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondErr maps service and storage errors to status codes. Store failures
// are logged and reported without detail.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	default:
		s.logger.Error("[api] %s %s [%s]: %v", r.Method, r.URL.Path, requestID(r), err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
