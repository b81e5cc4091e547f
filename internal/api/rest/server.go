package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/pitchside/internal/jobs"
	"github.com/fortuna/pitchside/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, jobSvc *jobs.Service) *Server {
	handler := NewHandler(db, jobSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Scraping jobs
	api.HandleFunc("/scrape", handler.SubmitScrape).Methods("POST")
	api.HandleFunc("/jobs/{jobID}", handler.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{jobID}", handler.CancelJob).Methods("DELETE")

	// Stored records
	api.HandleFunc("/records/team", handler.GetTeamRecords).Methods("GET")
	api.HandleFunc("/records/player", handler.GetPlayerRecords).Methods("GET")
	api.HandleFunc("/export/{kind}", handler.ExportCSV).Methods("GET")
	api.HandleFunc("/schema/{kind}", handler.GetSchema).Methods("GET")
	api.HandleFunc("/seasons", handler.GetSeasons).Methods("GET")
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
