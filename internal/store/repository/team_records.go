package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna/pitchside/internal/store"
)

// TeamRecordRepository handles team match record data access
type TeamRecordRepository struct {
	db *store.Database
}

// NewTeamRecordRepository creates a new team record repository
func NewTeamRecordRepository(db *store.Database) *TeamRecordRepository {
	return &TeamRecordRepository{db: db}
}

// Insert appends a team match record. A record already present for the same
// (match_url, team_name) pair is left untouched, so re-scraping a match never
// duplicates or overwrites rows.
func (r *TeamRecordRepository) Insert(ctx context.Context, rec *store.TeamMatchRecord) error {
	cols := store.TeamColumns()

	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.Ptr(rec)
	}

	query := fmt.Sprintf(`
		INSERT INTO team_match_records (%s)
		VALUES (%s)
		ON CONFLICT (match_url, team_name) DO NOTHING
	`, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	if _, err := r.db.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting team record: %w", err)
	}
	return nil
}

// Query returns team records matching the filter, newest matches first.
// Filter fields are conjunctive; unset fields match everything.
func (r *TeamRecordRepository) Query(ctx context.Context, filter store.RecordFilter) ([]*store.TeamMatchRecord, error) {
	cols := store.TeamColumns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	query := fmt.Sprintf("SELECT id, %s FROM team_match_records", strings.Join(names, ", "))

	var conds []string
	var args []any
	if filter.Season != "" {
		args = append(args, filter.Season)
		conds = append(conds, fmt.Sprintf("season = $%d", len(args)))
	}
	if filter.Team != "" {
		args = append(args, filter.Team)
		conds = append(conds, fmt.Sprintf("team_name = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY match_date DESC NULLS LAST, match_url, team_name"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying team records: %w", err)
	}
	defer rows.Close()

	var records []*store.TeamMatchRecord
	for rows.Next() {
		rec := &store.TeamMatchRecord{}
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &rec.ID)
		for _, c := range cols {
			dest = append(dest, c.Ptr(rec))
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning team record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DistinctSeasons returns every season with at least one stored record
func (r *TeamRecordRepository) DistinctSeasons(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT DISTINCT season FROM team_match_records ORDER BY season DESC")
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, s)
	}

	return seasons, rows.Err()
}

// DistinctTeams returns every team name with at least one stored record
func (r *TeamRecordRepository) DistinctTeams(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT DISTINCT team_name FROM team_match_records ORDER BY team_name")
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}
