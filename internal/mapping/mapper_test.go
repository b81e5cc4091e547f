package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/pitchside/internal/scrape"
)

func fixture() scrape.FixtureReference {
	return scrape.FixtureReference{
		URL:    "https://fbref.com/en/matches/abc123/TeamA-TeamB-2023",
		Season: "2023-24",
	}
}

func intp(n int) *int { return &n }

func scoreboard() scrape.Scoreboard {
	d := time.Date(2023, time.April, 23, 0, 0, 0, 0, time.UTC)
	return scrape.Scoreboard{
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		HomeScore: intp(3),
		AwayScore: intp(1),
		MatchDate: &d,
		Referee:   "Michael Oliver",
		SquadIDs:  map[string]string{"Arsenal": "18bb7c10", "Chelsea": "cff3d9bb"},
	}
}

func row(kind scrape.RowKind, cells ...scrape.CapturedCell) scrape.CapturedRow {
	return scrape.CapturedRow{Kind: kind, Cells: cells}
}

func cell(stat, text string) scrape.CapturedCell {
	return scrape.CapturedCell{Stat: stat, Text: text}
}

func TestParseTableID(t *testing.T) {
	id, cat, ok := ParseTableID("stats_18bb7c10_summary")
	require.True(t, ok)
	assert.Equal(t, "18bb7c10", id)
	assert.Equal(t, CategorySummary, cat)

	id, cat, ok = ParseTableID("stats_18bb7c10_passing_types")
	require.True(t, ok)
	assert.Equal(t, "18bb7c10", id)
	assert.Equal(t, CategoryPassingTypes, cat)

	id, cat, ok = ParseTableID("keeper_stats_cff3d9bb")
	require.True(t, ok)
	assert.Equal(t, "cff3d9bb", id)
	assert.Equal(t, CategoryKeeper, cat)

	_, _, ok = ParseTableID("sched_2023-2024_9_1")
	assert.False(t, ok)
}

func TestMapTeamPrefersFooterTotals(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					// Body rows would sum to 9; the pre-computed total says 15.
					row(scrape.BodyRow, cell("player", "Saka"), cell("shots", "4")),
					row(scrape.BodyRow, cell("player", "Odegaard"), cell("shots", "5")),
					row(scrape.FooterRow, cell("player", "14 Players"), cell("shots", "15"), cell("possession", "61.5")),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	require.Len(t, teams, 2)

	arsenal := teams[0]
	assert.Equal(t, "Arsenal", arsenal.TeamName)
	assert.True(t, arsenal.IsHome)
	require.True(t, arsenal.Shots.Valid)
	assert.EqualValues(t, 15, arsenal.Shots.Int32)
	require.True(t, arsenal.Possession.Valid)
	assert.EqualValues(t, 61.5, arsenal.Possession.Float64)

	require.True(t, arsenal.GoalsFor.Valid)
	assert.EqualValues(t, 3, arsenal.GoalsFor.Int32)
	require.True(t, arsenal.GoalsAgainst.Valid)
	assert.EqualValues(t, 1, arsenal.GoalsAgainst.Int32)

	chelsea := teams[1]
	assert.Equal(t, "Chelsea", chelsea.TeamName)
	assert.False(t, chelsea.IsHome)
	require.True(t, chelsea.GoalsFor.Valid)
	assert.EqualValues(t, 1, chelsea.GoalsFor.Int32)
	assert.False(t, chelsea.Shots.Valid, "no tables for Chelsea, stats stay absent")
}

func TestMapTeamFallsBackToTotalRow(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_misc",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow, cell("player", "Saka"), cell("fouls", "2")),
					row(scrape.BodyRow, cell("player", "Total"), cell("fouls", "11")),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	require.True(t, teams[0].Fouls.Valid)
	assert.EqualValues(t, 11, teams[0].Fouls.Int32)
}

func TestMapTeamKeeperStatsFromKeeperTable(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			// Keeper tables ship without a footer or a "Total" row.
			{
				ID: "keeper_stats_18bb7c10",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow,
						cell("player", "Aaron Ramsdale"),
						cell("gk_saves", "5"),
						cell("gk_save_pct", "83.3"),
						cell("gk_psxg", "1.7"),
					),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	arsenal := teams[0]

	require.True(t, arsenal.GKSaves.Valid, "keeper row fills the team goalkeeper group")
	assert.EqualValues(t, 5, arsenal.GKSaves.Int32)
	require.True(t, arsenal.GKSavePct.Valid)
	assert.EqualValues(t, 83.3, arsenal.GKSavePct.Float64)
	require.True(t, arsenal.GKPSxG.Valid)
	assert.EqualValues(t, 1.7, arsenal.GKPSxG.Float64)
}

func TestMapTeamKeeperFallbackTakesLastRow(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "keeper_stats_18bb7c10",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow, cell("player", "Aaron Ramsdale"), cell("gk_saves", "3")),
					row(scrape.BodyRow, cell("player", "Karl Hein"), cell("gk_saves", "2")),
				},
			},
			// A non-keeper table without a footer or total row must still
			// not fall back to a player row.
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow, cell("player", "Saka"), cell("shots", "4")),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	arsenal := teams[0]

	require.True(t, arsenal.GKSaves.Valid)
	assert.EqualValues(t, 2, arsenal.GKSaves.Int32, "the keeper who finished the match counts")
	assert.False(t, arsenal.Shots.Valid, "only keeper tables use the last-row fallback")
}

func TestMapTeamMalformedCellLeavesFieldAbsent(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					row(scrape.FooterRow,
						cell("player", "14 Players"),
						cell("shots", "n/a"),
						cell("xg", "2.4"),
						cell("possession", "61.5%"),
					),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	arsenal := teams[0]

	assert.False(t, arsenal.Shots.Valid, "unparseable cell maps to absent, not zero")
	require.True(t, arsenal.XG.Valid)
	assert.EqualValues(t, 2.4, arsenal.XG.Float64)
	require.True(t, arsenal.Possession.Valid, "percent sign is tolerated")
	assert.EqualValues(t, 61.5, arsenal.Possession.Float64)
}

func TestMapTeamAliasTags(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					row(scrape.FooterRow,
						cell("player", "14 Players"),
						cell("shots_total", "15"),
						cell("yellow_cards", "2"),
						cell("dribbles", "9"),
					),
				},
			},
		},
	}

	teams, _ := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	arsenal := teams[0]

	require.True(t, arsenal.Shots.Valid)
	assert.EqualValues(t, 15, arsenal.Shots.Int32)
	require.True(t, arsenal.CardsYellow.Valid)
	assert.EqualValues(t, 2, arsenal.CardsYellow.Int32)
	require.True(t, arsenal.TakeOns.Valid)
	assert.EqualValues(t, 9, arsenal.TakeOns.Int32)
}

func TestMapPlayersConsolidatesAcrossTables(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow,
						cell("player", "Bukayo Saka"),
						cell("shirtnumber", "7"),
						cell("position", "RW"),
						cell("minutes", "90"),
						cell("goals", "1"),
						cell("shots", "4"),
					),
					row(scrape.FooterRow, cell("player", "14 Players"), cell("shots", "15")),
				},
			},
			{
				ID: "stats_18bb7c10_passing",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow,
						cell("player", "Bukayo Saka"),
						cell("passes_completed", "31"),
						cell("passes", "40"),
						cell("passes_pct", "77.5"),
					),
				},
			},
			{
				ID: "keeper_stats_18bb7c10",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow,
						cell("player", "Aaron Ramsdale"),
						cell("gk_saves", "5"),
						cell("gk_save_pct", "83.3"),
						cell("gk_psxg", "1.7"),
					),
				},
			},
		},
	}

	_, players := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	require.Len(t, players, 2)

	saka := players[0]
	assert.Equal(t, "Bukayo Saka", saka.PlayerName)
	assert.Equal(t, "Arsenal", saka.TeamName)
	assert.Equal(t, "7", saka.ShirtNumber.String)
	assert.Equal(t, "RW", saka.Position.String)
	assert.EqualValues(t, 90, saka.Minutes.Int32)
	assert.EqualValues(t, 1, saka.Goals.Int32)
	assert.EqualValues(t, 4, saka.Shots.Int32)
	assert.EqualValues(t, 31, saka.PassesCompleted.Int32, "stats merge across category tables")
	assert.EqualValues(t, 40, saka.PassesAttempted.Int32)
	assert.EqualValues(t, 77.5, saka.PassesPct.Float64)

	ramsdale := players[1]
	assert.Equal(t, "Aaron Ramsdale", ramsdale.PlayerName)
	assert.EqualValues(t, 5, ramsdale.GKSaves.Int32)
	assert.EqualValues(t, 83.3, ramsdale.GKSavePct.Float64)
	assert.EqualValues(t, 1.7, ramsdale.GKPSxG.Float64)
	assert.False(t, ramsdale.Goals.Valid)
}

func TestMapPlayersSkipsAggregateRows(t *testing.T) {
	report := &scrape.MatchReport{
		Scoreboard: scoreboard(),
		Tables: []scrape.RawTableCapture{
			{
				ID: "stats_18bb7c10_summary",
				Rows: []scrape.CapturedRow{
					row(scrape.BodyRow, cell("player", "Bukayo Saka"), cell("shots", "4")),
					row(scrape.BodyRow, cell("player", "Total"), cell("shots", "15")),
					row(scrape.FooterRow, cell("player", "14 Players"), cell("shots", "15")),
				},
			},
		},
	}

	_, players := NewMapper().MapMatch(report, fixture(), time.Now().UTC())
	require.Len(t, players, 1)
	assert.Equal(t, "Bukayo Saka", players[0].PlayerName)
}

func TestMapMatchStampsIdentity(t *testing.T) {
	scrapedAt := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	report := &scrape.MatchReport{Scoreboard: scoreboard()}

	teams, _ := NewMapper().MapMatch(report, fixture(), scrapedAt)
	for _, rec := range teams {
		assert.Equal(t, "https://fbref.com/en/matches/abc123/TeamA-TeamB-2023", rec.MatchURL)
		assert.Equal(t, "2023-24", rec.Season)
		assert.Equal(t, "Arsenal", rec.HomeTeam)
		assert.Equal(t, "Chelsea", rec.AwayTeam)
		assert.Equal(t, scrapedAt, rec.ScrapedAt)
		require.True(t, rec.MatchDate.Valid)
		assert.Equal(t, "Michael Oliver", rec.Referee.String)
	}
}
