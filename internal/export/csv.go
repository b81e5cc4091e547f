package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fortuna/pitchside/internal/store"
)

// CSV export is schema-driven: the column set and order come from the store's
// column descriptors, so every export carries every column regardless of how
// sparse the scraped data is. Absent values render as empty strings.

// WriteTeamCSV writes team records to w, header first
func WriteTeamCSV(w io.Writer, records []*store.TeamMatchRecord) error {
	cw := csv.NewWriter(w)
	cols := store.TeamColumns()

	if err := cw.Write(store.TeamColumnNames()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, c := range cols {
			row[i] = store.FormatValue(c.Ptr(rec))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePlayerCSV writes player records to w, header first
func WritePlayerCSV(w io.Writer, records []*store.PlayerMatchRecord) error {
	cw := csv.NewWriter(w)
	cols := store.PlayerColumns()

	if err := cw.Write(store.PlayerColumnNames()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, c := range cols {
			row[i] = store.FormatValue(c.Ptr(rec))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
