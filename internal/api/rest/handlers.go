package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/pitchside/internal/export"
	"github.com/fortuna/pitchside/internal/jobs"
	"github.com/fortuna/pitchside/internal/scrape"
	"github.com/fortuna/pitchside/internal/store"
	"github.com/fortuna/pitchside/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db      *store.Database
	jobSvc  *jobs.Service
	teams   *repository.TeamRecordRepository
	players *repository.PlayerRecordRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, jobSvc *jobs.Service) *Handler {
	return &Handler{
		db:      db,
		jobSvc:  jobSvc,
		teams:   repository.NewTeamRecordRepository(db),
		players: repository.NewPlayerRecordRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "pitchside",
		"version": "1.0.0",
	})
}

// SubmitScrape accepts a scraping job and returns its status immediately
func (h *Handler) SubmitScrape(w http.ResponseWriter, r *http.Request) {
	var req jobs.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status, err := h.jobSvc.Submit(req)
	if err != nil {
		if errors.Is(err, scrape.ErrInvalidSeasonFormat) {
			respondError(w, http.StatusBadRequest, "Invalid season", err)
			return
		}
		respondError(w, http.StatusServiceUnavailable, "Failed to queue job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, status)
}

// GetJob returns a job's progress snapshot
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]

	status, err := h.jobSvc.Status(jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "Job not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch job", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// CancelJob stops a job before its next match
func (h *Handler) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]

	if err := h.jobSvc.Cancel(jobID); err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "Job not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to cancel job", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"job_id": jobID,
		"status": "cancellation requested",
	})
}

// GetTeamRecords returns stored team records, filtered by season and team
func (h *Handler) GetTeamRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.teams.Query(r.Context(), filterFromQuery(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team records", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// GetPlayerRecords returns stored player records, filtered by season, team and player
func (h *Handler) GetPlayerRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.players.Query(r.Context(), filterFromQuery(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player records", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// ExportCSV streams matching records as CSV. The kind path segment selects
// team or player records; filters match the records endpoints.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	filter := filterFromQuery(r)

	// The CSV headers are set only once the query has succeeded, so error
	// responses go out as JSON.
	switch kind {
	case "team":
		records, err := h.teams.Query(r.Context(), filter)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch team records", err)
			return
		}
		setCSVHeaders(w, kind)
		if err := export.WriteTeamCSV(w, records); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write CSV", err)
		}
	case "player":
		records, err := h.players.Query(r.Context(), filter)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch player records", err)
			return
		}
		setCSVHeaders(w, kind)
		if err := export.WritePlayerCSV(w, records); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write CSV", err)
		}
	default:
		respondError(w, http.StatusNotFound, "Unknown export kind, expected team or player", nil)
	}
}

func setCSVHeaders(w http.ResponseWriter, kind string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_match_records.csv"`, kind))
}

// GetSchema returns the exported column set for a record kind
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	var columns []string
	switch kind {
	case "team":
		columns = store.TeamColumnNames()
	case "player":
		columns = store.PlayerColumnNames()
	default:
		respondError(w, http.StatusNotFound, "Unknown schema kind, expected team or player", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"columns": columns,
	})
}

// GetSeasons lists every season with stored records
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.teams.DistinctSeasons(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch seasons", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"seasons": seasons,
	})
}

// GetTeams lists every team with stored records
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.DistinctTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
	})
}

func filterFromQuery(r *http.Request) store.RecordFilter {
	q := r.URL.Query()
	return store.RecordFilter{
		Season: q.Get("season"),
		Team:   q.Get("team"),
		Player: q.Get("player"),
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
