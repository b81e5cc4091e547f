package store

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// TeamMatchRecord holds one team's statistics for one fixture. Exactly two
// records exist per fixture (home and away); they share the match identity
// fields and differ in TeamName, IsHome and the statistics.
//
// Every statistic is nullable: a NULL means the value was not extractable
// from the source page, which is distinct from a genuine zero. Records are
// created once by the mapping layer and never updated in place.
type TeamMatchRecord struct {
	ID        int64        `json:"id" db:"id"`
	MatchURL  string       `json:"match_url" db:"match_url"`
	MatchDate sql.NullTime `json:"match_date,omitempty" db:"match_date"`
	Season    string       `json:"season" db:"season"`
	HomeTeam  string       `json:"home_team" db:"home_team"`
	AwayTeam  string       `json:"away_team" db:"away_team"`
	TeamName  string       `json:"team_name" db:"team_name"`
	IsHome    bool         `json:"is_home" db:"is_home"`

	GoalsFor     sql.NullInt32 `json:"goals_for,omitempty" db:"goals_for"`
	GoalsAgainst sql.NullInt32 `json:"goals_against,omitempty" db:"goals_against"`

	Referee           sql.NullString `json:"referee,omitempty" db:"referee"`
	AssistantReferees pq.StringArray `json:"assistant_referees,omitempty" db:"assistant_referees"`
	FourthOfficial    sql.NullString `json:"fourth_official,omitempty" db:"fourth_official"`
	VARReferee        sql.NullString `json:"var_referee,omitempty" db:"var_referee"`
	Venue             sql.NullString `json:"venue,omitempty" db:"venue"`
	Attendance        sql.NullInt32  `json:"attendance,omitempty" db:"attendance"`

	// Summary
	Possession       sql.NullFloat64 `json:"possession,omitempty" db:"possession"`
	Shots            sql.NullInt32   `json:"shots,omitempty" db:"shots"`
	ShotsOnTarget    sql.NullInt32   `json:"shots_on_target,omitempty" db:"shots_on_target"`
	ShotsOnTargetPct sql.NullFloat64 `json:"shots_on_target_pct,omitempty" db:"shots_on_target_pct"`
	Assists          sql.NullInt32   `json:"assists,omitempty" db:"assists"`
	XG               sql.NullFloat64 `json:"xg,omitempty" db:"xg"`
	NPXG             sql.NullFloat64 `json:"npxg,omitempty" db:"npxg"`
	XGAssist         sql.NullFloat64 `json:"xg_assist,omitempty" db:"xg_assist"`
	PensMade         sql.NullInt32   `json:"pens_made,omitempty" db:"pens_made"`
	PensAtt          sql.NullInt32   `json:"pens_att,omitempty" db:"pens_att"`
	SCA              sql.NullInt32   `json:"sca,omitempty" db:"sca"`
	GCA              sql.NullInt32   `json:"gca,omitempty" db:"gca"`

	// Passing
	PassesCompleted           sql.NullInt32   `json:"passes_completed,omitempty" db:"passes_completed"`
	PassesAttempted           sql.NullInt32   `json:"passes_attempted,omitempty" db:"passes_attempted"`
	PassesPct                 sql.NullFloat64 `json:"passes_pct,omitempty" db:"passes_pct"`
	PassesTotalDistance       sql.NullInt32   `json:"passes_total_distance,omitempty" db:"passes_total_distance"`
	PassesProgressiveDistance sql.NullInt32   `json:"passes_progressive_distance,omitempty" db:"passes_progressive_distance"`
	PassesCompletedShort      sql.NullInt32   `json:"passes_completed_short,omitempty" db:"passes_completed_short"`
	PassesAttemptedShort      sql.NullInt32   `json:"passes_attempted_short,omitempty" db:"passes_attempted_short"`
	PassesPctShort            sql.NullFloat64 `json:"passes_pct_short,omitempty" db:"passes_pct_short"`
	PassesCompletedMedium     sql.NullInt32   `json:"passes_completed_medium,omitempty" db:"passes_completed_medium"`
	PassesAttemptedMedium     sql.NullInt32   `json:"passes_attempted_medium,omitempty" db:"passes_attempted_medium"`
	PassesPctMedium           sql.NullFloat64 `json:"passes_pct_medium,omitempty" db:"passes_pct_medium"`
	PassesCompletedLong       sql.NullInt32   `json:"passes_completed_long,omitempty" db:"passes_completed_long"`
	PassesAttemptedLong       sql.NullInt32   `json:"passes_attempted_long,omitempty" db:"passes_attempted_long"`
	PassesPctLong             sql.NullFloat64 `json:"passes_pct_long,omitempty" db:"passes_pct_long"`
	KeyPasses                 sql.NullInt32   `json:"key_passes,omitempty" db:"key_passes"`
	PassesIntoFinalThird      sql.NullInt32   `json:"passes_into_final_third,omitempty" db:"passes_into_final_third"`
	PassesIntoPenaltyArea     sql.NullInt32   `json:"passes_into_penalty_area,omitempty" db:"passes_into_penalty_area"`
	ProgressivePasses         sql.NullInt32   `json:"progressive_passes,omitempty" db:"progressive_passes"`

	// Pass types
	PassesLive      sql.NullInt32 `json:"passes_live,omitempty" db:"passes_live"`
	PassesDead      sql.NullInt32 `json:"passes_dead,omitempty" db:"passes_dead"`
	PassesFreeKicks sql.NullInt32 `json:"passes_free_kicks,omitempty" db:"passes_free_kicks"`
	ThroughBalls    sql.NullInt32 `json:"through_balls,omitempty" db:"through_balls"`
	PassesSwitches  sql.NullInt32 `json:"passes_switches,omitempty" db:"passes_switches"`
	Crosses         sql.NullInt32 `json:"crosses,omitempty" db:"crosses"`
	ThrowIns        sql.NullInt32 `json:"throw_ins,omitempty" db:"throw_ins"`
	CornerKicks     sql.NullInt32 `json:"corner_kicks,omitempty" db:"corner_kicks"`

	// Defense
	Tackles             sql.NullInt32   `json:"tackles,omitempty" db:"tackles"`
	TacklesWon          sql.NullInt32   `json:"tackles_won,omitempty" db:"tackles_won"`
	TacklesDef3rd       sql.NullInt32   `json:"tackles_def_3rd,omitempty" db:"tackles_def_3rd"`
	TacklesMid3rd       sql.NullInt32   `json:"tackles_mid_3rd,omitempty" db:"tackles_mid_3rd"`
	TacklesAtt3rd       sql.NullInt32   `json:"tackles_att_3rd,omitempty" db:"tackles_att_3rd"`
	ChallengeTackles    sql.NullInt32   `json:"challenge_tackles,omitempty" db:"challenge_tackles"`
	Challenges          sql.NullInt32   `json:"challenges,omitempty" db:"challenges"`
	ChallengeTacklesPct sql.NullFloat64 `json:"challenge_tackles_pct,omitempty" db:"challenge_tackles_pct"`
	Blocks              sql.NullInt32   `json:"blocks,omitempty" db:"blocks"`
	BlockedShots        sql.NullInt32   `json:"blocked_shots,omitempty" db:"blocked_shots"`
	BlockedPasses       sql.NullInt32   `json:"blocked_passes,omitempty" db:"blocked_passes"`
	Interceptions       sql.NullInt32   `json:"interceptions,omitempty" db:"interceptions"`
	Clearances          sql.NullInt32   `json:"clearances,omitempty" db:"clearances"`
	Errors              sql.NullInt32   `json:"errors,omitempty" db:"errors"`

	// Possession detail
	Touches                    sql.NullInt32   `json:"touches,omitempty" db:"touches"`
	TouchesDefPenArea          sql.NullInt32   `json:"touches_def_pen_area,omitempty" db:"touches_def_pen_area"`
	TouchesDef3rd              sql.NullInt32   `json:"touches_def_3rd,omitempty" db:"touches_def_3rd"`
	TouchesMid3rd              sql.NullInt32   `json:"touches_mid_3rd,omitempty" db:"touches_mid_3rd"`
	TouchesAtt3rd              sql.NullInt32   `json:"touches_att_3rd,omitempty" db:"touches_att_3rd"`
	TouchesAttPenArea          sql.NullInt32   `json:"touches_att_pen_area,omitempty" db:"touches_att_pen_area"`
	TakeOns                    sql.NullInt32   `json:"take_ons,omitempty" db:"take_ons"`
	TakeOnsWon                 sql.NullInt32   `json:"take_ons_won,omitempty" db:"take_ons_won"`
	TakeOnsWonPct              sql.NullFloat64 `json:"take_ons_won_pct,omitempty" db:"take_ons_won_pct"`
	Carries                    sql.NullInt32   `json:"carries,omitempty" db:"carries"`
	CarriesDistance            sql.NullInt32   `json:"carries_distance,omitempty" db:"carries_distance"`
	CarriesProgressiveDistance sql.NullInt32   `json:"carries_progressive_distance,omitempty" db:"carries_progressive_distance"`
	ProgressiveCarries         sql.NullInt32   `json:"progressive_carries,omitempty" db:"progressive_carries"`
	Miscontrols                sql.NullInt32   `json:"miscontrols,omitempty" db:"miscontrols"`
	Dispossessed               sql.NullInt32   `json:"dispossessed,omitempty" db:"dispossessed"`
	PassesReceived             sql.NullInt32   `json:"passes_received,omitempty" db:"passes_received"`

	// Discipline and misc
	CardsYellow    sql.NullInt32   `json:"cards_yellow,omitempty" db:"cards_yellow"`
	CardsRed       sql.NullInt32   `json:"cards_red,omitempty" db:"cards_red"`
	CardsYellowRed sql.NullInt32   `json:"cards_yellow_red,omitempty" db:"cards_yellow_red"`
	Fouls          sql.NullInt32   `json:"fouls,omitempty" db:"fouls"`
	Fouled         sql.NullInt32   `json:"fouled,omitempty" db:"fouled"`
	Offsides       sql.NullInt32   `json:"offsides,omitempty" db:"offsides"`
	PensWon        sql.NullInt32   `json:"pens_won,omitempty" db:"pens_won"`
	PensConceded   sql.NullInt32   `json:"pens_conceded,omitempty" db:"pens_conceded"`
	OwnGoals       sql.NullInt32   `json:"own_goals,omitempty" db:"own_goals"`
	BallRecoveries sql.NullInt32   `json:"ball_recoveries,omitempty" db:"ball_recoveries"`
	AerialsWon     sql.NullInt32   `json:"aerials_won,omitempty" db:"aerials_won"`
	AerialsLost    sql.NullInt32   `json:"aerials_lost,omitempty" db:"aerials_lost"`
	AerialsWonPct  sql.NullFloat64 `json:"aerials_won_pct,omitempty" db:"aerials_won_pct"`

	// Goalkeeping (team aggregate)
	GKShotsOnTargetAgainst sql.NullInt32   `json:"gk_shots_on_target_against,omitempty" db:"gk_shots_on_target_against"`
	GKSaves                sql.NullInt32   `json:"gk_saves,omitempty" db:"gk_saves"`
	GKSavePct              sql.NullFloat64 `json:"gk_save_pct,omitempty" db:"gk_save_pct"`
	GKPSxG                 sql.NullFloat64 `json:"gk_psxg,omitempty" db:"gk_psxg"`
	GKCrossesStopped       sql.NullInt32   `json:"gk_crosses_stopped,omitempty" db:"gk_crosses_stopped"`

	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
}

// PlayerMatchRecord holds one player's statistics for one fixture, keyed by
// (match URL, team name, player name). The gk_* subset is populated only for
// goalkeepers.
type PlayerMatchRecord struct {
	ID        int64        `json:"id" db:"id"`
	MatchURL  string       `json:"match_url" db:"match_url"`
	MatchDate sql.NullTime `json:"match_date,omitempty" db:"match_date"`
	Season    string       `json:"season" db:"season"`
	TeamName  string       `json:"team_name" db:"team_name"`

	PlayerName  string         `json:"player_name" db:"player_name"`
	ShirtNumber sql.NullString `json:"shirt_number,omitempty" db:"shirt_number"`
	Nation      sql.NullString `json:"nation,omitempty" db:"nation"`
	Position    sql.NullString `json:"position,omitempty" db:"position"`
	Age         sql.NullString `json:"age,omitempty" db:"age"`
	Minutes     sql.NullInt32  `json:"minutes,omitempty" db:"minutes"`

	// Performance
	Goals         sql.NullInt32   `json:"goals,omitempty" db:"goals"`
	Assists       sql.NullInt32   `json:"assists,omitempty" db:"assists"`
	PensMade      sql.NullInt32   `json:"pens_made,omitempty" db:"pens_made"`
	PensAtt       sql.NullInt32   `json:"pens_att,omitempty" db:"pens_att"`
	Shots         sql.NullInt32   `json:"shots,omitempty" db:"shots"`
	ShotsOnTarget sql.NullInt32   `json:"shots_on_target,omitempty" db:"shots_on_target"`
	CardsYellow   sql.NullInt32   `json:"cards_yellow,omitempty" db:"cards_yellow"`
	CardsRed      sql.NullInt32   `json:"cards_red,omitempty" db:"cards_red"`
	XG            sql.NullFloat64 `json:"xg,omitempty" db:"xg"`
	NPXG          sql.NullFloat64 `json:"npxg,omitempty" db:"npxg"`
	XGAssist      sql.NullFloat64 `json:"xg_assist,omitempty" db:"xg_assist"`
	SCA           sql.NullInt32   `json:"sca,omitempty" db:"sca"`
	GCA           sql.NullInt32   `json:"gca,omitempty" db:"gca"`

	// Passing
	PassesCompleted           sql.NullInt32   `json:"passes_completed,omitempty" db:"passes_completed"`
	PassesAttempted           sql.NullInt32   `json:"passes_attempted,omitempty" db:"passes_attempted"`
	PassesPct                 sql.NullFloat64 `json:"passes_pct,omitempty" db:"passes_pct"`
	PassesTotalDistance       sql.NullInt32   `json:"passes_total_distance,omitempty" db:"passes_total_distance"`
	PassesProgressiveDistance sql.NullInt32   `json:"passes_progressive_distance,omitempty" db:"passes_progressive_distance"`
	KeyPasses                 sql.NullInt32   `json:"key_passes,omitempty" db:"key_passes"`
	PassesIntoFinalThird      sql.NullInt32   `json:"passes_into_final_third,omitempty" db:"passes_into_final_third"`
	PassesIntoPenaltyArea     sql.NullInt32   `json:"passes_into_penalty_area,omitempty" db:"passes_into_penalty_area"`
	CrossesIntoPenaltyArea    sql.NullInt32   `json:"crosses_into_penalty_area,omitempty" db:"crosses_into_penalty_area"`
	ProgressivePasses         sql.NullInt32   `json:"progressive_passes,omitempty" db:"progressive_passes"`

	// Pass types
	PassesLive      sql.NullInt32 `json:"passes_live,omitempty" db:"passes_live"`
	PassesDead      sql.NullInt32 `json:"passes_dead,omitempty" db:"passes_dead"`
	PassesFreeKicks sql.NullInt32 `json:"passes_free_kicks,omitempty" db:"passes_free_kicks"`
	ThroughBalls    sql.NullInt32 `json:"through_balls,omitempty" db:"through_balls"`
	PassesSwitches  sql.NullInt32 `json:"passes_switches,omitempty" db:"passes_switches"`
	Crosses         sql.NullInt32 `json:"crosses,omitempty" db:"crosses"`
	ThrowIns        sql.NullInt32 `json:"throw_ins,omitempty" db:"throw_ins"`
	CornerKicks     sql.NullInt32 `json:"corner_kicks,omitempty" db:"corner_kicks"`

	// Defense
	Tackles          sql.NullInt32 `json:"tackles,omitempty" db:"tackles"`
	TacklesWon       sql.NullInt32 `json:"tackles_won,omitempty" db:"tackles_won"`
	TacklesDef3rd    sql.NullInt32 `json:"tackles_def_3rd,omitempty" db:"tackles_def_3rd"`
	TacklesMid3rd    sql.NullInt32 `json:"tackles_mid_3rd,omitempty" db:"tackles_mid_3rd"`
	TacklesAtt3rd    sql.NullInt32 `json:"tackles_att_3rd,omitempty" db:"tackles_att_3rd"`
	ChallengeTackles sql.NullInt32 `json:"challenge_tackles,omitempty" db:"challenge_tackles"`
	Challenges       sql.NullInt32 `json:"challenges,omitempty" db:"challenges"`
	Blocks           sql.NullInt32 `json:"blocks,omitempty" db:"blocks"`
	BlockedShots     sql.NullInt32 `json:"blocked_shots,omitempty" db:"blocked_shots"`
	Interceptions    sql.NullInt32 `json:"interceptions,omitempty" db:"interceptions"`
	Clearances       sql.NullInt32 `json:"clearances,omitempty" db:"clearances"`
	Errors           sql.NullInt32 `json:"errors,omitempty" db:"errors"`

	// Possession detail
	Touches                    sql.NullInt32 `json:"touches,omitempty" db:"touches"`
	TouchesDefPenArea          sql.NullInt32 `json:"touches_def_pen_area,omitempty" db:"touches_def_pen_area"`
	TouchesDef3rd              sql.NullInt32 `json:"touches_def_3rd,omitempty" db:"touches_def_3rd"`
	TouchesMid3rd              sql.NullInt32 `json:"touches_mid_3rd,omitempty" db:"touches_mid_3rd"`
	TouchesAtt3rd              sql.NullInt32 `json:"touches_att_3rd,omitempty" db:"touches_att_3rd"`
	TouchesAttPenArea          sql.NullInt32 `json:"touches_att_pen_area,omitempty" db:"touches_att_pen_area"`
	TakeOns                    sql.NullInt32 `json:"take_ons,omitempty" db:"take_ons"`
	TakeOnsWon                 sql.NullInt32 `json:"take_ons_won,omitempty" db:"take_ons_won"`
	Carries                    sql.NullInt32 `json:"carries,omitempty" db:"carries"`
	CarriesDistance            sql.NullInt32 `json:"carries_distance,omitempty" db:"carries_distance"`
	CarriesProgressiveDistance sql.NullInt32 `json:"carries_progressive_distance,omitempty" db:"carries_progressive_distance"`
	ProgressiveCarries         sql.NullInt32 `json:"progressive_carries,omitempty" db:"progressive_carries"`
	Miscontrols                sql.NullInt32 `json:"miscontrols,omitempty" db:"miscontrols"`
	Dispossessed               sql.NullInt32 `json:"dispossessed,omitempty" db:"dispossessed"`
	PassesReceived             sql.NullInt32 `json:"passes_received,omitempty" db:"passes_received"`
	ProgressivePassesReceived  sql.NullInt32 `json:"progressive_passes_received,omitempty" db:"progressive_passes_received"`

	// Misc
	Fouls          sql.NullInt32 `json:"fouls,omitempty" db:"fouls"`
	Fouled         sql.NullInt32 `json:"fouled,omitempty" db:"fouled"`
	Offsides       sql.NullInt32 `json:"offsides,omitempty" db:"offsides"`
	PensWon        sql.NullInt32 `json:"pens_won,omitempty" db:"pens_won"`
	PensConceded   sql.NullInt32 `json:"pens_conceded,omitempty" db:"pens_conceded"`
	OwnGoals       sql.NullInt32 `json:"own_goals,omitempty" db:"own_goals"`
	BallRecoveries sql.NullInt32 `json:"ball_recoveries,omitempty" db:"ball_recoveries"`
	AerialsWon     sql.NullInt32 `json:"aerials_won,omitempty" db:"aerials_won"`
	AerialsLost    sql.NullInt32 `json:"aerials_lost,omitempty" db:"aerials_lost"`

	// Goalkeeper-only
	GKShotsOnTargetAgainst     sql.NullInt32   `json:"gk_shots_on_target_against,omitempty" db:"gk_shots_on_target_against"`
	GKGoalsAgainst             sql.NullInt32   `json:"gk_goals_against,omitempty" db:"gk_goals_against"`
	GKSaves                    sql.NullInt32   `json:"gk_saves,omitempty" db:"gk_saves"`
	GKSavePct                  sql.NullFloat64 `json:"gk_save_pct,omitempty" db:"gk_save_pct"`
	GKPSxG                     sql.NullFloat64 `json:"gk_psxg,omitempty" db:"gk_psxg"`
	GKCrossesStopped           sql.NullInt32   `json:"gk_crosses_stopped,omitempty" db:"gk_crosses_stopped"`
	GKDefActionsOutsidePenArea sql.NullInt32   `json:"gk_def_actions_outside_pen_area,omitempty" db:"gk_def_actions_outside_pen_area"`

	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
}

// RecordFilter narrows record queries. All set fields are ANDed together;
// zero values impose no constraint.
type RecordFilter struct {
	Season string
	Team   string
	Player string
}
