package store

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/lib/pq"
)

// TeamColumn describes one column of the team_match_records table. The Ptr
// accessor returns the address of the corresponding struct field so that a
// single column list drives INSERT parameter binding, row scanning and CSV
// export without repeating the field set.
type TeamColumn struct {
	Name string
	Ptr  func(*TeamMatchRecord) any
}

// PlayerColumn is the player_match_records counterpart of TeamColumn.
type PlayerColumn struct {
	Name string
	Ptr  func(*PlayerMatchRecord) any
}

// TeamColumns returns the persisted columns of a team record in stable order,
// excluding the serial id.
func TeamColumns() []TeamColumn {
	return teamColumns
}

// PlayerColumns returns the persisted columns of a player record in stable
// order, excluding the serial id.
func PlayerColumns() []PlayerColumn {
	return playerColumns
}

// TeamColumnNames returns just the column names, in the same order as
// TeamColumns.
func TeamColumnNames() []string {
	names := make([]string, len(teamColumns))
	for i, c := range teamColumns {
		names[i] = c.Name
	}
	return names
}

// PlayerColumnNames returns just the column names, in the same order as
// PlayerColumns.
func PlayerColumnNames() []string {
	names := make([]string, len(playerColumns))
	for i, c := range playerColumns {
		names[i] = c.Name
	}
	return names
}

// FormatValue renders a column value for CSV output. NULLs render as the
// empty string so every row carries the full column set.
func FormatValue(ptr any) string {
	switch v := ptr.(type) {
	case *string:
		return *v
	case *bool:
		return strconv.FormatBool(*v)
	case *time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case *sql.NullString:
		if !v.Valid {
			return ""
		}
		return v.String
	case *sql.NullInt32:
		if !v.Valid {
			return ""
		}
		return strconv.FormatInt(int64(v.Int32), 10)
	case *sql.NullFloat64:
		if !v.Valid {
			return ""
		}
		return strconv.FormatFloat(v.Float64, 'f', -1, 64)
	case *sql.NullTime:
		if !v.Valid {
			return ""
		}
		return v.Time.UTC().Format("2006-01-02")
	case *pq.StringArray:
		if len(*v) == 0 {
			return ""
		}
		out := (*v)[0]
		for _, s := range (*v)[1:] {
			out += "; " + s
		}
		return out
	default:
		return ""
	}
}

var teamColumns = []TeamColumn{
	{"match_url", func(r *TeamMatchRecord) any { return &r.MatchURL }},
	{"match_date", func(r *TeamMatchRecord) any { return &r.MatchDate }},
	{"season", func(r *TeamMatchRecord) any { return &r.Season }},
	{"home_team", func(r *TeamMatchRecord) any { return &r.HomeTeam }},
	{"away_team", func(r *TeamMatchRecord) any { return &r.AwayTeam }},
	{"team_name", func(r *TeamMatchRecord) any { return &r.TeamName }},
	{"is_home", func(r *TeamMatchRecord) any { return &r.IsHome }},
	{"goals_for", func(r *TeamMatchRecord) any { return &r.GoalsFor }},
	{"goals_against", func(r *TeamMatchRecord) any { return &r.GoalsAgainst }},
	{"referee", func(r *TeamMatchRecord) any { return &r.Referee }},
	{"assistant_referees", func(r *TeamMatchRecord) any { return &r.AssistantReferees }},
	{"fourth_official", func(r *TeamMatchRecord) any { return &r.FourthOfficial }},
	{"var_referee", func(r *TeamMatchRecord) any { return &r.VARReferee }},
	{"venue", func(r *TeamMatchRecord) any { return &r.Venue }},
	{"attendance", func(r *TeamMatchRecord) any { return &r.Attendance }},
	{"possession", func(r *TeamMatchRecord) any { return &r.Possession }},
	{"shots", func(r *TeamMatchRecord) any { return &r.Shots }},
	{"shots_on_target", func(r *TeamMatchRecord) any { return &r.ShotsOnTarget }},
	{"shots_on_target_pct", func(r *TeamMatchRecord) any { return &r.ShotsOnTargetPct }},
	{"assists", func(r *TeamMatchRecord) any { return &r.Assists }},
	{"xg", func(r *TeamMatchRecord) any { return &r.XG }},
	{"npxg", func(r *TeamMatchRecord) any { return &r.NPXG }},
	{"xg_assist", func(r *TeamMatchRecord) any { return &r.XGAssist }},
	{"pens_made", func(r *TeamMatchRecord) any { return &r.PensMade }},
	{"pens_att", func(r *TeamMatchRecord) any { return &r.PensAtt }},
	{"sca", func(r *TeamMatchRecord) any { return &r.SCA }},
	{"gca", func(r *TeamMatchRecord) any { return &r.GCA }},
	{"passes_completed", func(r *TeamMatchRecord) any { return &r.PassesCompleted }},
	{"passes_attempted", func(r *TeamMatchRecord) any { return &r.PassesAttempted }},
	{"passes_pct", func(r *TeamMatchRecord) any { return &r.PassesPct }},
	{"passes_total_distance", func(r *TeamMatchRecord) any { return &r.PassesTotalDistance }},
	{"passes_progressive_distance", func(r *TeamMatchRecord) any { return &r.PassesProgressiveDistance }},
	{"passes_completed_short", func(r *TeamMatchRecord) any { return &r.PassesCompletedShort }},
	{"passes_attempted_short", func(r *TeamMatchRecord) any { return &r.PassesAttemptedShort }},
	{"passes_pct_short", func(r *TeamMatchRecord) any { return &r.PassesPctShort }},
	{"passes_completed_medium", func(r *TeamMatchRecord) any { return &r.PassesCompletedMedium }},
	{"passes_attempted_medium", func(r *TeamMatchRecord) any { return &r.PassesAttemptedMedium }},
	{"passes_pct_medium", func(r *TeamMatchRecord) any { return &r.PassesPctMedium }},
	{"passes_completed_long", func(r *TeamMatchRecord) any { return &r.PassesCompletedLong }},
	{"passes_attempted_long", func(r *TeamMatchRecord) any { return &r.PassesAttemptedLong }},
	{"passes_pct_long", func(r *TeamMatchRecord) any { return &r.PassesPctLong }},
	{"key_passes", func(r *TeamMatchRecord) any { return &r.KeyPasses }},
	{"passes_into_final_third", func(r *TeamMatchRecord) any { return &r.PassesIntoFinalThird }},
	{"passes_into_penalty_area", func(r *TeamMatchRecord) any { return &r.PassesIntoPenaltyArea }},
	{"progressive_passes", func(r *TeamMatchRecord) any { return &r.ProgressivePasses }},
	{"passes_live", func(r *TeamMatchRecord) any { return &r.PassesLive }},
	{"passes_dead", func(r *TeamMatchRecord) any { return &r.PassesDead }},
	{"passes_free_kicks", func(r *TeamMatchRecord) any { return &r.PassesFreeKicks }},
	{"through_balls", func(r *TeamMatchRecord) any { return &r.ThroughBalls }},
	{"passes_switches", func(r *TeamMatchRecord) any { return &r.PassesSwitches }},
	{"crosses", func(r *TeamMatchRecord) any { return &r.Crosses }},
	{"throw_ins", func(r *TeamMatchRecord) any { return &r.ThrowIns }},
	{"corner_kicks", func(r *TeamMatchRecord) any { return &r.CornerKicks }},
	{"tackles", func(r *TeamMatchRecord) any { return &r.Tackles }},
	{"tackles_won", func(r *TeamMatchRecord) any { return &r.TacklesWon }},
	{"tackles_def_3rd", func(r *TeamMatchRecord) any { return &r.TacklesDef3rd }},
	{"tackles_mid_3rd", func(r *TeamMatchRecord) any { return &r.TacklesMid3rd }},
	{"tackles_att_3rd", func(r *TeamMatchRecord) any { return &r.TacklesAtt3rd }},
	{"challenge_tackles", func(r *TeamMatchRecord) any { return &r.ChallengeTackles }},
	{"challenges", func(r *TeamMatchRecord) any { return &r.Challenges }},
	{"challenge_tackles_pct", func(r *TeamMatchRecord) any { return &r.ChallengeTacklesPct }},
	{"blocks", func(r *TeamMatchRecord) any { return &r.Blocks }},
	{"blocked_shots", func(r *TeamMatchRecord) any { return &r.BlockedShots }},
	{"blocked_passes", func(r *TeamMatchRecord) any { return &r.BlockedPasses }},
	{"interceptions", func(r *TeamMatchRecord) any { return &r.Interceptions }},
	{"clearances", func(r *TeamMatchRecord) any { return &r.Clearances }},
	{"errors", func(r *TeamMatchRecord) any { return &r.Errors }},
	{"touches", func(r *TeamMatchRecord) any { return &r.Touches }},
	{"touches_def_pen_area", func(r *TeamMatchRecord) any { return &r.TouchesDefPenArea }},
	{"touches_def_3rd", func(r *TeamMatchRecord) any { return &r.TouchesDef3rd }},
	{"touches_mid_3rd", func(r *TeamMatchRecord) any { return &r.TouchesMid3rd }},
	{"touches_att_3rd", func(r *TeamMatchRecord) any { return &r.TouchesAtt3rd }},
	{"touches_att_pen_area", func(r *TeamMatchRecord) any { return &r.TouchesAttPenArea }},
	{"take_ons", func(r *TeamMatchRecord) any { return &r.TakeOns }},
	{"take_ons_won", func(r *TeamMatchRecord) any { return &r.TakeOnsWon }},
	{"take_ons_won_pct", func(r *TeamMatchRecord) any { return &r.TakeOnsWonPct }},
	{"carries", func(r *TeamMatchRecord) any { return &r.Carries }},
	{"carries_distance", func(r *TeamMatchRecord) any { return &r.CarriesDistance }},
	{"carries_progressive_distance", func(r *TeamMatchRecord) any { return &r.CarriesProgressiveDistance }},
	{"progressive_carries", func(r *TeamMatchRecord) any { return &r.ProgressiveCarries }},
	{"miscontrols", func(r *TeamMatchRecord) any { return &r.Miscontrols }},
	{"dispossessed", func(r *TeamMatchRecord) any { return &r.Dispossessed }},
	{"passes_received", func(r *TeamMatchRecord) any { return &r.PassesReceived }},
	{"cards_yellow", func(r *TeamMatchRecord) any { return &r.CardsYellow }},
	{"cards_red", func(r *TeamMatchRecord) any { return &r.CardsRed }},
	{"cards_yellow_red", func(r *TeamMatchRecord) any { return &r.CardsYellowRed }},
	{"fouls", func(r *TeamMatchRecord) any { return &r.Fouls }},
	{"fouled", func(r *TeamMatchRecord) any { return &r.Fouled }},
	{"offsides", func(r *TeamMatchRecord) any { return &r.Offsides }},
	{"pens_won", func(r *TeamMatchRecord) any { return &r.PensWon }},
	{"pens_conceded", func(r *TeamMatchRecord) any { return &r.PensConceded }},
	{"own_goals", func(r *TeamMatchRecord) any { return &r.OwnGoals }},
	{"ball_recoveries", func(r *TeamMatchRecord) any { return &r.BallRecoveries }},
	{"aerials_won", func(r *TeamMatchRecord) any { return &r.AerialsWon }},
	{"aerials_lost", func(r *TeamMatchRecord) any { return &r.AerialsLost }},
	{"aerials_won_pct", func(r *TeamMatchRecord) any { return &r.AerialsWonPct }},
	{"gk_shots_on_target_against", func(r *TeamMatchRecord) any { return &r.GKShotsOnTargetAgainst }},
	{"gk_saves", func(r *TeamMatchRecord) any { return &r.GKSaves }},
	{"gk_save_pct", func(r *TeamMatchRecord) any { return &r.GKSavePct }},
	{"gk_psxg", func(r *TeamMatchRecord) any { return &r.GKPSxG }},
	{"gk_crosses_stopped", func(r *TeamMatchRecord) any { return &r.GKCrossesStopped }},
	{"scraped_at", func(r *TeamMatchRecord) any { return &r.ScrapedAt }},
}

var playerColumns = []PlayerColumn{
	{"match_url", func(r *PlayerMatchRecord) any { return &r.MatchURL }},
	{"match_date", func(r *PlayerMatchRecord) any { return &r.MatchDate }},
	{"season", func(r *PlayerMatchRecord) any { return &r.Season }},
	{"team_name", func(r *PlayerMatchRecord) any { return &r.TeamName }},
	{"player_name", func(r *PlayerMatchRecord) any { return &r.PlayerName }},
	{"shirt_number", func(r *PlayerMatchRecord) any { return &r.ShirtNumber }},
	{"nation", func(r *PlayerMatchRecord) any { return &r.Nation }},
	{"position", func(r *PlayerMatchRecord) any { return &r.Position }},
	{"age", func(r *PlayerMatchRecord) any { return &r.Age }},
	{"minutes", func(r *PlayerMatchRecord) any { return &r.Minutes }},
	{"goals", func(r *PlayerMatchRecord) any { return &r.Goals }},
	{"assists", func(r *PlayerMatchRecord) any { return &r.Assists }},
	{"pens_made", func(r *PlayerMatchRecord) any { return &r.PensMade }},
	{"pens_att", func(r *PlayerMatchRecord) any { return &r.PensAtt }},
	{"shots", func(r *PlayerMatchRecord) any { return &r.Shots }},
	{"shots_on_target", func(r *PlayerMatchRecord) any { return &r.ShotsOnTarget }},
	{"cards_yellow", func(r *PlayerMatchRecord) any { return &r.CardsYellow }},
	{"cards_red", func(r *PlayerMatchRecord) any { return &r.CardsRed }},
	{"xg", func(r *PlayerMatchRecord) any { return &r.XG }},
	{"npxg", func(r *PlayerMatchRecord) any { return &r.NPXG }},
	{"xg_assist", func(r *PlayerMatchRecord) any { return &r.XGAssist }},
	{"sca", func(r *PlayerMatchRecord) any { return &r.SCA }},
	{"gca", func(r *PlayerMatchRecord) any { return &r.GCA }},
	{"passes_completed", func(r *PlayerMatchRecord) any { return &r.PassesCompleted }},
	{"passes_attempted", func(r *PlayerMatchRecord) any { return &r.PassesAttempted }},
	{"passes_pct", func(r *PlayerMatchRecord) any { return &r.PassesPct }},
	{"passes_total_distance", func(r *PlayerMatchRecord) any { return &r.PassesTotalDistance }},
	{"passes_progressive_distance", func(r *PlayerMatchRecord) any { return &r.PassesProgressiveDistance }},
	{"key_passes", func(r *PlayerMatchRecord) any { return &r.KeyPasses }},
	{"passes_into_final_third", func(r *PlayerMatchRecord) any { return &r.PassesIntoFinalThird }},
	{"passes_into_penalty_area", func(r *PlayerMatchRecord) any { return &r.PassesIntoPenaltyArea }},
	{"crosses_into_penalty_area", func(r *PlayerMatchRecord) any { return &r.CrossesIntoPenaltyArea }},
	{"progressive_passes", func(r *PlayerMatchRecord) any { return &r.ProgressivePasses }},
	{"passes_live", func(r *PlayerMatchRecord) any { return &r.PassesLive }},
	{"passes_dead", func(r *PlayerMatchRecord) any { return &r.PassesDead }},
	{"passes_free_kicks", func(r *PlayerMatchRecord) any { return &r.PassesFreeKicks }},
	{"through_balls", func(r *PlayerMatchRecord) any { return &r.ThroughBalls }},
	{"passes_switches", func(r *PlayerMatchRecord) any { return &r.PassesSwitches }},
	{"crosses", func(r *PlayerMatchRecord) any { return &r.Crosses }},
	{"throw_ins", func(r *PlayerMatchRecord) any { return &r.ThrowIns }},
	{"corner_kicks", func(r *PlayerMatchRecord) any { return &r.CornerKicks }},
	{"tackles", func(r *PlayerMatchRecord) any { return &r.Tackles }},
	{"tackles_won", func(r *PlayerMatchRecord) any { return &r.TacklesWon }},
	{"tackles_def_3rd", func(r *PlayerMatchRecord) any { return &r.TacklesDef3rd }},
	{"tackles_mid_3rd", func(r *PlayerMatchRecord) any { return &r.TacklesMid3rd }},
	{"tackles_att_3rd", func(r *PlayerMatchRecord) any { return &r.TacklesAtt3rd }},
	{"challenge_tackles", func(r *PlayerMatchRecord) any { return &r.ChallengeTackles }},
	{"challenges", func(r *PlayerMatchRecord) any { return &r.Challenges }},
	{"blocks", func(r *PlayerMatchRecord) any { return &r.Blocks }},
	{"blocked_shots", func(r *PlayerMatchRecord) any { return &r.BlockedShots }},
	{"interceptions", func(r *PlayerMatchRecord) any { return &r.Interceptions }},
	{"clearances", func(r *PlayerMatchRecord) any { return &r.Clearances }},
	{"errors", func(r *PlayerMatchRecord) any { return &r.Errors }},
	{"touches", func(r *PlayerMatchRecord) any { return &r.Touches }},
	{"touches_def_pen_area", func(r *PlayerMatchRecord) any { return &r.TouchesDefPenArea }},
	{"touches_def_3rd", func(r *PlayerMatchRecord) any { return &r.TouchesDef3rd }},
	{"touches_mid_3rd", func(r *PlayerMatchRecord) any { return &r.TouchesMid3rd }},
	{"touches_att_3rd", func(r *PlayerMatchRecord) any { return &r.TouchesAtt3rd }},
	{"touches_att_pen_area", func(r *PlayerMatchRecord) any { return &r.TouchesAttPenArea }},
	{"take_ons", func(r *PlayerMatchRecord) any { return &r.TakeOns }},
	{"take_ons_won", func(r *PlayerMatchRecord) any { return &r.TakeOnsWon }},
	{"carries", func(r *PlayerMatchRecord) any { return &r.Carries }},
	{"carries_distance", func(r *PlayerMatchRecord) any { return &r.CarriesDistance }},
	{"carries_progressive_distance", func(r *PlayerMatchRecord) any { return &r.CarriesProgressiveDistance }},
	{"progressive_carries", func(r *PlayerMatchRecord) any { return &r.ProgressiveCarries }},
	{"miscontrols", func(r *PlayerMatchRecord) any { return &r.Miscontrols }},
	{"dispossessed", func(r *PlayerMatchRecord) any { return &r.Dispossessed }},
	{"passes_received", func(r *PlayerMatchRecord) any { return &r.PassesReceived }},
	{"progressive_passes_received", func(r *PlayerMatchRecord) any { return &r.ProgressivePassesReceived }},
	{"fouls", func(r *PlayerMatchRecord) any { return &r.Fouls }},
	{"fouled", func(r *PlayerMatchRecord) any { return &r.Fouled }},
	{"offsides", func(r *PlayerMatchRecord) any { return &r.Offsides }},
	{"pens_won", func(r *PlayerMatchRecord) any { return &r.PensWon }},
	{"pens_conceded", func(r *PlayerMatchRecord) any { return &r.PensConceded }},
	{"own_goals", func(r *PlayerMatchRecord) any { return &r.OwnGoals }},
	{"ball_recoveries", func(r *PlayerMatchRecord) any { return &r.BallRecoveries }},
	{"aerials_won", func(r *PlayerMatchRecord) any { return &r.AerialsWon }},
	{"aerials_lost", func(r *PlayerMatchRecord) any { return &r.AerialsLost }},
	{"gk_shots_on_target_against", func(r *PlayerMatchRecord) any { return &r.GKShotsOnTargetAgainst }},
	{"gk_goals_against", func(r *PlayerMatchRecord) any { return &r.GKGoalsAgainst }},
	{"gk_saves", func(r *PlayerMatchRecord) any { return &r.GKSaves }},
	{"gk_save_pct", func(r *PlayerMatchRecord) any { return &r.GKSavePct }},
	{"gk_psxg", func(r *PlayerMatchRecord) any { return &r.GKPSxG }},
	{"gk_crosses_stopped", func(r *PlayerMatchRecord) any { return &r.GKCrossesStopped }},
	{"gk_def_actions_outside_pen_area", func(r *PlayerMatchRecord) any { return &r.GKDefActionsOutsidePenArea }},
	{"scraped_at", func(r *PlayerMatchRecord) any { return &r.ScrapedAt }},
}
