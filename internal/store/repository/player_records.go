package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna/pitchside/internal/store"
)

// PlayerRecordRepository handles player match record data access
type PlayerRecordRepository struct {
	db *store.Database
}

// NewPlayerRecordRepository creates a new player record repository
func NewPlayerRecordRepository(db *store.Database) *PlayerRecordRepository {
	return &PlayerRecordRepository{db: db}
}

// Insert appends a player match record. A record already present for the
// same (match_url, team_name, player_name) triple is left untouched.
func (r *PlayerRecordRepository) Insert(ctx context.Context, rec *store.PlayerMatchRecord) error {
	cols := store.PlayerColumns()

	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.Ptr(rec)
	}

	query := fmt.Sprintf(`
		INSERT INTO player_match_records (%s)
		VALUES (%s)
		ON CONFLICT (match_url, team_name, player_name) DO NOTHING
	`, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	if _, err := r.db.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting player record: %w", err)
	}
	return nil
}

// Query returns player records matching the filter, newest matches first.
// Filter fields are conjunctive; unset fields match everything.
func (r *PlayerRecordRepository) Query(ctx context.Context, filter store.RecordFilter) ([]*store.PlayerMatchRecord, error) {
	cols := store.PlayerColumns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	query := fmt.Sprintf("SELECT id, %s FROM player_match_records", strings.Join(names, ", "))

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
	if filter.Player != "" {
		args = append(args, filter.Player)
		conds = append(conds, fmt.Sprintf("player_name = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY match_date DESC NULLS LAST, match_url, team_name, player_name"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying player records: %w", err)
	}
	defer rows.Close()

	var records []*store.PlayerMatchRecord
	for rows.Next() {
		rec := &store.PlayerMatchRecord{}
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &rec.ID)
		for _, c := range cols {
			dest = append(dest, c.Ptr(rec))
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning player record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
