package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestExportCSVErrorResponsesAreJSON(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/fixture", nil)
	req = mux.SetURLVars(req, map[string]string{"kind": "fixture"})
	rr := httptest.NewRecorder()

	h.ExportCSV(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), "errors must not go out under CSV headers")
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "error")
}

func TestSetCSVHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	setCSVHeaders(rr, "team")

	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="team_match_records.csv"`, rr.Header().Get("Content-Disposition"))
}
