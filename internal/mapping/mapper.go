package mapping

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/fortuna/pitchside/internal/scrape"
	"github.com/fortuna/pitchside/internal/store"
)

// TableCategory names one stats table family on a match report page.
type TableCategory string

const (
	CategorySummary      TableCategory = "summary"
	CategoryPassing      TableCategory = "passing"
	CategoryPassingTypes TableCategory = "passing_types"
	CategoryDefense      TableCategory = "defense"
	CategoryPossession   TableCategory = "possession"
	CategoryMisc         TableCategory = "misc"
	CategoryKeeper       TableCategory = "keeper"
)

var (
	statsTableRe  = regexp.MustCompile(`^stats_([0-9a-f]{8})_(summary|passing_types|passing|defense|possession|misc)$`)
	keeperTableRe = regexp.MustCompile(`^keeper_stats_([0-9a-f]{8})$`)
)

// ParseTableID decodes a stats table id into its squad id and category.
// Table ids follow stats_{squadID}_{category} and keeper_stats_{squadID}.
func ParseTableID(id string) (squadID string, category TableCategory, ok bool) {
	if m := statsTableRe.FindStringSubmatch(id); m != nil {
		return m[1], TableCategory(m[2]), true
	}
	if m := keeperTableRe.FindStringSubmatch(id); m != nil {
		return m[1], CategoryKeeper, true
	}
	return "", "", false
}

// Mapper turns raw table captures into persistence-ready records.
type Mapper struct{}

// NewMapper creates a mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapMatch produces both teams' records and every player record for one
// parsed match report.
func (m *Mapper) MapMatch(report *scrape.MatchReport, fixture scrape.FixtureReference, scrapedAt time.Time) ([]*store.TeamMatchRecord, []*store.PlayerMatchRecord) {
	sb := report.Scoreboard

	var teams []*store.TeamMatchRecord
	var players []*store.PlayerMatchRecord

	for _, side := range []struct {
		name   string
		isHome bool
	}{
		{sb.HomeTeam, true},
		{sb.AwayTeam, false},
	} {
		squadID := sb.SquadIDs[side.name]
		tables := tablesFor(report.Tables, squadID)

		teams = append(teams, m.mapTeam(sb, fixture, side.name, side.isHome, tables, scrapedAt))
		players = append(players, m.mapPlayers(sb, fixture, side.name, tables, scrapedAt)...)
	}

	return teams, players
}

// mapTeam builds one team's record from that team's tables, reading each
// table's pre-computed aggregate row. The footer total is authoritative;
// summing body rows double-counts players who appear in multiple rows.
func (m *Mapper) mapTeam(sb scrape.Scoreboard, fixture scrape.FixtureReference, teamName string, isHome bool, tables []scrape.RawTableCapture, scrapedAt time.Time) *store.TeamMatchRecord {
	rec := &store.TeamMatchRecord{
		MatchURL:  fixture.URL,
		Season:    fixture.Season,
		HomeTeam:  sb.HomeTeam,
		AwayTeam:  sb.AwayTeam,
		TeamName:  teamName,
		IsHome:    isHome,
		ScrapedAt: scrapedAt,
	}

	if sb.MatchDate != nil {
		rec.MatchDate = sql.NullTime{Time: *sb.MatchDate, Valid: true}
	}
	goalsFor, goalsAgainst := sb.HomeScore, sb.AwayScore
	if !isHome {
		goalsFor, goalsAgainst = sb.AwayScore, sb.HomeScore
	}
	if goalsFor != nil {
		rec.GoalsFor = sql.NullInt32{Int32: int32(*goalsFor), Valid: true}
	}
	if goalsAgainst != nil {
		rec.GoalsAgainst = sql.NullInt32{Int32: int32(*goalsAgainst), Valid: true}
	}

	if sb.Referee != "" {
		rec.Referee = sql.NullString{String: sb.Referee, Valid: true}
	}
	rec.AssistantReferees = sb.AssistantReferees
	if sb.FourthOfficial != "" {
		rec.FourthOfficial = sql.NullString{String: sb.FourthOfficial, Valid: true}
	}
	if sb.VARReferee != "" {
		rec.VARReferee = sql.NullString{String: sb.VARReferee, Valid: true}
	}
	if sb.Venue != "" {
		rec.Venue = sql.NullString{String: sb.Venue, Valid: true}
	}
	if sb.Attendance != nil {
		rec.Attendance = sql.NullInt32{Int32: int32(*sb.Attendance), Valid: true}
	}

	for _, table := range tables {
		_, category, _ := ParseTableID(table.ID)
		row, ok := aggregateRow(table, category)
		if !ok {
			continue
		}
		for _, cell := range row.Cells {
			if setter, known := teamSetters[cell.Stat]; known {
				assign(setter(rec), cell.Text)
			}
		}
	}

	return rec
}

// mapPlayers builds one record per player, consolidating the player's rows
// across every category table. Aggregate rows are skipped.
func (m *Mapper) mapPlayers(sb scrape.Scoreboard, fixture scrape.FixtureReference, teamName string, tables []scrape.RawTableCapture, scrapedAt time.Time) []*store.PlayerMatchRecord {
	byName := make(map[string]*store.PlayerMatchRecord)
	var order []string

	for _, table := range tables {
		for _, row := range table.Rows {
			if row.Kind == scrape.FooterRow {
				continue
			}
			nameCell, ok := row.Cell("player")
			if !ok || nameCell.Text == "" || isAggregateLabel(nameCell.Text) {
				continue
			}

			rec := byName[nameCell.Text]
			if rec == nil {
				rec = &store.PlayerMatchRecord{
					MatchURL:   fixture.URL,
					Season:     fixture.Season,
					TeamName:   teamName,
					PlayerName: nameCell.Text,
					ScrapedAt:  scrapedAt,
				}
				if sb.MatchDate != nil {
					rec.MatchDate = sql.NullTime{Time: *sb.MatchDate, Valid: true}
				}
				byName[nameCell.Text] = rec
				order = append(order, nameCell.Text)
			}

			for _, cell := range row.Cells {
				if cell.Stat == "player" {
					continue
				}
				if setter, known := playerIdentitySetters[cell.Stat]; known {
					assign(setter(rec), cell.Text)
					continue
				}
				if setter, known := playerSetters[cell.Stat]; known {
					assign(setter(rec), cell.Text)
				}
			}
		}
	}

	records := make([]*store.PlayerMatchRecord, 0, len(order))
	for _, name := range order {
		records = append(records, byName[name])
	}
	return records
}

// tablesFor selects the tables belonging to one squad. An empty squad id
// matches nothing, so a missing squad cross-reference degrades to a record
// with only scoreboard facts.
func tablesFor(tables []scrape.RawTableCapture, squadID string) []scrape.RawTableCapture {
	if squadID == "" {
		return nil
	}
	var out []scrape.RawTableCapture
	for _, t := range tables {
		id, _, ok := ParseTableID(t.ID)
		if ok && id == squadID {
			out = append(out, t)
		}
	}
	return out
}

// aggregateRow picks the row carrying the team total: the footer row when
// present, otherwise a body row labeled as a total. Body rows are never
// summed. Keeper tables carry neither a footer nor a total row, so the last
// body row stands in for the team; it belongs to the keeper who finished
// the match.
func aggregateRow(table scrape.RawTableCapture, category TableCategory) (scrape.CapturedRow, bool) {
	for _, row := range table.Rows {
		if row.Kind == scrape.FooterRow {
			return row, true
		}
	}
	for _, row := range table.Rows {
		if len(row.Cells) > 0 && isAggregateLabel(row.Cells[0].Text) {
			return row, true
		}
	}
	if category == CategoryKeeper {
		for i := len(table.Rows) - 1; i >= 0; i-- {
			if table.Rows[i].Kind == scrape.BodyRow {
				return table.Rows[i], true
			}
		}
	}
	return scrape.CapturedRow{}, false
}

// isAggregateLabel reports whether a row label marks a team total row,
// e.g. "Total" or "16 Players".
func isAggregateLabel(label string) bool {
	label = strings.TrimSpace(label)
	if strings.EqualFold(label, "Total") {
		return true
	}
	return strings.HasSuffix(label, " Players")
}
