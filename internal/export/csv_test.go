package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/pitchside/internal/store"
)

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTeamCSVSchemaDriven(t *testing.T) {
	sparse := &store.TeamMatchRecord{
		MatchURL: "https://fbref.com/en/matches/abc123/A-B",
		Season:   "2023-24",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		TeamName: "Arsenal",
		IsHome:   true,
	}
	rich := &store.TeamMatchRecord{
		MatchURL:   "https://fbref.com/en/matches/def456/C-D",
		MatchDate:  sql.NullTime{Time: time.Date(2023, time.April, 23, 0, 0, 0, 0, time.UTC), Valid: true},
		Season:     "2023-24",
		HomeTeam:   "Liverpool",
		AwayTeam:   "Everton",
		TeamName:   "Liverpool",
		IsHome:     true,
		GoalsFor:   sql.NullInt32{Int32: 2, Valid: true},
		Possession: sql.NullFloat64{Float64: 61.5, Valid: true},
		Shots:      sql.NullInt32{Int32: 15, Valid: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTeamCSV(&buf, []*store.TeamMatchRecord{sparse, rich}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, store.TeamColumnNames(), header, "column set and order come from the schema")

	// Every row carries every column even when the record is sparse.
	assert.Len(t, rows[1], len(header))
	assert.Len(t, rows[2], len(header))

	byName := func(row []string, col string) string {
		for i, name := range header {
			if name == col {
				return row[i]
			}
		}
		t.Fatalf("column %s missing", col)
		return ""
	}

	assert.Equal(t, "", byName(rows[1], "shots"), "absent value renders empty, not zero")
	assert.Equal(t, "", byName(rows[1], "match_date"))
	assert.Equal(t, "15", byName(rows[2], "shots"))
	assert.Equal(t, "61.5", byName(rows[2], "possession"))
	assert.Equal(t, "2023-04-23", byName(rows[2], "match_date"))
	assert.Equal(t, "true", byName(rows[2], "is_home"))
}

func TestWritePlayerCSVSchemaDriven(t *testing.T) {
	rec := &store.PlayerMatchRecord{
		MatchURL:   "https://fbref.com/en/matches/abc123/A-B",
		Season:     "2023-24",
		TeamName:   "Arsenal",
		PlayerName: "Bukayo Saka",
		Minutes:    sql.NullInt32{Int32: 90, Valid: true},
		XG:         sql.NullFloat64{Float64: 0.4, Valid: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlayerCSV(&buf, []*store.PlayerMatchRecord{rec}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, store.PlayerColumnNames(), rows[0])
	assert.Len(t, rows[1], len(rows[0]))
	assert.Contains(t, rows[1], "Bukayo Saka")
	assert.Contains(t, rows[1], "90")
	assert.Contains(t, rows[1], "0.4")
}

func TestWriteTeamCSVEmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTeamCSV(&buf, nil))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 1)
	assert.Equal(t, store.TeamColumnNames(), rows[0])
}
