package mapping

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/fortuna/pitchside/internal/store"
)

// The setter tables below map a cell's semantic data-stat tag to the record
// field it fills. The site has renamed several tags over the years, so known
// alias spellings map to the same field. Parsing is driven by the field type:
// integer fields tolerate thousands separators, float fields tolerate a
// trailing percent sign. A cell that fails to parse leaves its one field
// absent and never aborts the record.

var teamSetters = map[string]func(*store.TeamMatchRecord) any{
	"possession":  func(r *store.TeamMatchRecord) any { return &r.Possession },
	"poss":        func(r *store.TeamMatchRecord) any { return &r.Possession },
	"shots":       func(r *store.TeamMatchRecord) any { return &r.Shots },
	"shots_total": func(r *store.TeamMatchRecord) any { return &r.Shots },
	"shots_on_target": func(r *store.TeamMatchRecord) any { return &r.ShotsOnTarget },
	"shots_on_target_pct": func(r *store.TeamMatchRecord) any { return &r.ShotsOnTargetPct },
	"assists":   func(r *store.TeamMatchRecord) any { return &r.Assists },
	"xg":        func(r *store.TeamMatchRecord) any { return &r.XG },
	"npxg":      func(r *store.TeamMatchRecord) any { return &r.NPXG },
	"xg_assist": func(r *store.TeamMatchRecord) any { return &r.XGAssist },
	"xa":        func(r *store.TeamMatchRecord) any { return &r.XGAssist },
	"pens_made": func(r *store.TeamMatchRecord) any { return &r.PensMade },
	"pens_att":  func(r *store.TeamMatchRecord) any { return &r.PensAtt },
	"sca":       func(r *store.TeamMatchRecord) any { return &r.SCA },
	"gca":       func(r *store.TeamMatchRecord) any { return &r.GCA },

	"passes_completed": func(r *store.TeamMatchRecord) any { return &r.PassesCompleted },
	"passes":           func(r *store.TeamMatchRecord) any { return &r.PassesAttempted },
	"passes_attempted": func(r *store.TeamMatchRecord) any { return &r.PassesAttempted },
	"passes_pct":       func(r *store.TeamMatchRecord) any { return &r.PassesPct },
	"pass_pct":         func(r *store.TeamMatchRecord) any { return &r.PassesPct },
	"passes_total_distance":       func(r *store.TeamMatchRecord) any { return &r.PassesTotalDistance },
	"passes_progressive_distance": func(r *store.TeamMatchRecord) any { return &r.PassesProgressiveDistance },
	"passes_completed_short":      func(r *store.TeamMatchRecord) any { return &r.PassesCompletedShort },
	"passes_short":                func(r *store.TeamMatchRecord) any { return &r.PassesAttemptedShort },
	"passes_pct_short":            func(r *store.TeamMatchRecord) any { return &r.PassesPctShort },
	"passes_completed_medium":     func(r *store.TeamMatchRecord) any { return &r.PassesCompletedMedium },
	"passes_medium":               func(r *store.TeamMatchRecord) any { return &r.PassesAttemptedMedium },
	"passes_pct_medium":           func(r *store.TeamMatchRecord) any { return &r.PassesPctMedium },
	"passes_completed_long":       func(r *store.TeamMatchRecord) any { return &r.PassesCompletedLong },
	"passes_long":                 func(r *store.TeamMatchRecord) any { return &r.PassesAttemptedLong },
	"passes_pct_long":             func(r *store.TeamMatchRecord) any { return &r.PassesPctLong },
	"key_passes":                  func(r *store.TeamMatchRecord) any { return &r.KeyPasses },
	"assisted_shots":              func(r *store.TeamMatchRecord) any { return &r.KeyPasses },
	"passes_into_final_third":     func(r *store.TeamMatchRecord) any { return &r.PassesIntoFinalThird },
	"passes_into_penalty_area":    func(r *store.TeamMatchRecord) any { return &r.PassesIntoPenaltyArea },
	"progressive_passes":          func(r *store.TeamMatchRecord) any { return &r.ProgressivePasses },
	"passes_progressive":          func(r *store.TeamMatchRecord) any { return &r.ProgressivePasses },

	"passes_live":       func(r *store.TeamMatchRecord) any { return &r.PassesLive },
	"passes_dead":       func(r *store.TeamMatchRecord) any { return &r.PassesDead },
	"passes_free_kicks": func(r *store.TeamMatchRecord) any { return &r.PassesFreeKicks },
	"through_balls":     func(r *store.TeamMatchRecord) any { return &r.ThroughBalls },
	"passes_through":    func(r *store.TeamMatchRecord) any { return &r.ThroughBalls },
	"passes_switches":   func(r *store.TeamMatchRecord) any { return &r.PassesSwitches },
	"crosses":           func(r *store.TeamMatchRecord) any { return &r.Crosses },
	"throw_ins":         func(r *store.TeamMatchRecord) any { return &r.ThrowIns },
	"corner_kicks":      func(r *store.TeamMatchRecord) any { return &r.CornerKicks },
	"corners":           func(r *store.TeamMatchRecord) any { return &r.CornerKicks },

	"tackles":               func(r *store.TeamMatchRecord) any { return &r.Tackles },
	"tackles_won":           func(r *store.TeamMatchRecord) any { return &r.TacklesWon },
	"tackles_def_3rd":       func(r *store.TeamMatchRecord) any { return &r.TacklesDef3rd },
	"tackles_mid_3rd":       func(r *store.TeamMatchRecord) any { return &r.TacklesMid3rd },
	"tackles_att_3rd":       func(r *store.TeamMatchRecord) any { return &r.TacklesAtt3rd },
	"challenge_tackles":     func(r *store.TeamMatchRecord) any { return &r.ChallengeTackles },
	"challenges":            func(r *store.TeamMatchRecord) any { return &r.Challenges },
	"challenge_tackles_pct": func(r *store.TeamMatchRecord) any { return &r.ChallengeTacklesPct },
	"blocks":                func(r *store.TeamMatchRecord) any { return &r.Blocks },
	"blocked_shots":         func(r *store.TeamMatchRecord) any { return &r.BlockedShots },
	"blocked_passes":        func(r *store.TeamMatchRecord) any { return &r.BlockedPasses },
	"interceptions":         func(r *store.TeamMatchRecord) any { return &r.Interceptions },
	"clearances":            func(r *store.TeamMatchRecord) any { return &r.Clearances },
	"errors":                func(r *store.TeamMatchRecord) any { return &r.Errors },

	"touches":              func(r *store.TeamMatchRecord) any { return &r.Touches },
	"touches_def_pen_area": func(r *store.TeamMatchRecord) any { return &r.TouchesDefPenArea },
	"touches_def_3rd":      func(r *store.TeamMatchRecord) any { return &r.TouchesDef3rd },
	"touches_mid_3rd":      func(r *store.TeamMatchRecord) any { return &r.TouchesMid3rd },
	"touches_att_3rd":      func(r *store.TeamMatchRecord) any { return &r.TouchesAtt3rd },
	"touches_att_pen_area": func(r *store.TeamMatchRecord) any { return &r.TouchesAttPenArea },
	"take_ons":             func(r *store.TeamMatchRecord) any { return &r.TakeOns },
	"dribbles":             func(r *store.TeamMatchRecord) any { return &r.TakeOns },
	"take_ons_won":         func(r *store.TeamMatchRecord) any { return &r.TakeOnsWon },
	"dribbles_completed":   func(r *store.TeamMatchRecord) any { return &r.TakeOnsWon },
	"take_ons_won_pct":     func(r *store.TeamMatchRecord) any { return &r.TakeOnsWonPct },
	"carries":              func(r *store.TeamMatchRecord) any { return &r.Carries },
	"carries_distance":     func(r *store.TeamMatchRecord) any { return &r.CarriesDistance },
	"carry_distance":       func(r *store.TeamMatchRecord) any { return &r.CarriesDistance },
	"carries_progressive_distance": func(r *store.TeamMatchRecord) any { return &r.CarriesProgressiveDistance },
	"progressive_carries":          func(r *store.TeamMatchRecord) any { return &r.ProgressiveCarries },
	"carries_progressive":          func(r *store.TeamMatchRecord) any { return &r.ProgressiveCarries },
	"miscontrols":                  func(r *store.TeamMatchRecord) any { return &r.Miscontrols },
	"dispossessed":                 func(r *store.TeamMatchRecord) any { return &r.Dispossessed },
	"passes_received":              func(r *store.TeamMatchRecord) any { return &r.PassesReceived },

	"cards_yellow":     func(r *store.TeamMatchRecord) any { return &r.CardsYellow },
	"yellow_cards":     func(r *store.TeamMatchRecord) any { return &r.CardsYellow },
	"cards_red":        func(r *store.TeamMatchRecord) any { return &r.CardsRed },
	"red_cards":        func(r *store.TeamMatchRecord) any { return &r.CardsRed },
	"cards_yellow_red": func(r *store.TeamMatchRecord) any { return &r.CardsYellowRed },
	"fouls":            func(r *store.TeamMatchRecord) any { return &r.Fouls },
	"fouls_committed":  func(r *store.TeamMatchRecord) any { return &r.Fouls },
	"fouled":           func(r *store.TeamMatchRecord) any { return &r.Fouled },
	"fouls_drawn":      func(r *store.TeamMatchRecord) any { return &r.Fouled },
	"offsides":         func(r *store.TeamMatchRecord) any { return &r.Offsides },
	"pens_won":         func(r *store.TeamMatchRecord) any { return &r.PensWon },
	"pens_conceded":    func(r *store.TeamMatchRecord) any { return &r.PensConceded },
	"own_goals":        func(r *store.TeamMatchRecord) any { return &r.OwnGoals },
	"ball_recoveries":  func(r *store.TeamMatchRecord) any { return &r.BallRecoveries },
	"aerials_won":      func(r *store.TeamMatchRecord) any { return &r.AerialsWon },
	"aerials_lost":     func(r *store.TeamMatchRecord) any { return &r.AerialsLost },
	"aerials_won_pct":  func(r *store.TeamMatchRecord) any { return &r.AerialsWonPct },

	"gk_shots_on_target_against": func(r *store.TeamMatchRecord) any { return &r.GKShotsOnTargetAgainst },
	"gk_saves":                   func(r *store.TeamMatchRecord) any { return &r.GKSaves },
	"gk_save_pct":                func(r *store.TeamMatchRecord) any { return &r.GKSavePct },
	"gk_psxg":                    func(r *store.TeamMatchRecord) any { return &r.GKPSxG },
	"gk_crosses_stopped":         func(r *store.TeamMatchRecord) any { return &r.GKCrossesStopped },
}

var playerSetters = map[string]func(*store.PlayerMatchRecord) any{
	"goals":           func(r *store.PlayerMatchRecord) any { return &r.Goals },
	"assists":         func(r *store.PlayerMatchRecord) any { return &r.Assists },
	"pens_made":       func(r *store.PlayerMatchRecord) any { return &r.PensMade },
	"pens_att":        func(r *store.PlayerMatchRecord) any { return &r.PensAtt },
	"shots":           func(r *store.PlayerMatchRecord) any { return &r.Shots },
	"shots_total":     func(r *store.PlayerMatchRecord) any { return &r.Shots },
	"shots_on_target": func(r *store.PlayerMatchRecord) any { return &r.ShotsOnTarget },
	"cards_yellow":    func(r *store.PlayerMatchRecord) any { return &r.CardsYellow },
	"yellow_cards":    func(r *store.PlayerMatchRecord) any { return &r.CardsYellow },
	"cards_red":       func(r *store.PlayerMatchRecord) any { return &r.CardsRed },
	"red_cards":       func(r *store.PlayerMatchRecord) any { return &r.CardsRed },
	"xg":              func(r *store.PlayerMatchRecord) any { return &r.XG },
	"npxg":            func(r *store.PlayerMatchRecord) any { return &r.NPXG },
	"xg_assist":       func(r *store.PlayerMatchRecord) any { return &r.XGAssist },
	"xa":              func(r *store.PlayerMatchRecord) any { return &r.XGAssist },
	"sca":             func(r *store.PlayerMatchRecord) any { return &r.SCA },
	"gca":             func(r *store.PlayerMatchRecord) any { return &r.GCA },

	"passes_completed":            func(r *store.PlayerMatchRecord) any { return &r.PassesCompleted },
	"passes":                      func(r *store.PlayerMatchRecord) any { return &r.PassesAttempted },
	"passes_attempted":            func(r *store.PlayerMatchRecord) any { return &r.PassesAttempted },
	"passes_pct":                  func(r *store.PlayerMatchRecord) any { return &r.PassesPct },
	"pass_pct":                    func(r *store.PlayerMatchRecord) any { return &r.PassesPct },
	"passes_total_distance":       func(r *store.PlayerMatchRecord) any { return &r.PassesTotalDistance },
	"passes_progressive_distance": func(r *store.PlayerMatchRecord) any { return &r.PassesProgressiveDistance },
	"key_passes":                  func(r *store.PlayerMatchRecord) any { return &r.KeyPasses },
	"assisted_shots":              func(r *store.PlayerMatchRecord) any { return &r.KeyPasses },
	"passes_into_final_third":     func(r *store.PlayerMatchRecord) any { return &r.PassesIntoFinalThird },
	"passes_into_penalty_area":    func(r *store.PlayerMatchRecord) any { return &r.PassesIntoPenaltyArea },
	"crosses_into_penalty_area":   func(r *store.PlayerMatchRecord) any { return &r.CrossesIntoPenaltyArea },
	"progressive_passes":          func(r *store.PlayerMatchRecord) any { return &r.ProgressivePasses },
	"passes_progressive":          func(r *store.PlayerMatchRecord) any { return &r.ProgressivePasses },

	"passes_live":       func(r *store.PlayerMatchRecord) any { return &r.PassesLive },
	"passes_dead":       func(r *store.PlayerMatchRecord) any { return &r.PassesDead },
	"passes_free_kicks": func(r *store.PlayerMatchRecord) any { return &r.PassesFreeKicks },
	"through_balls":     func(r *store.PlayerMatchRecord) any { return &r.ThroughBalls },
	"passes_through":    func(r *store.PlayerMatchRecord) any { return &r.ThroughBalls },
	"passes_switches":   func(r *store.PlayerMatchRecord) any { return &r.PassesSwitches },
	"crosses":           func(r *store.PlayerMatchRecord) any { return &r.Crosses },
	"throw_ins":         func(r *store.PlayerMatchRecord) any { return &r.ThrowIns },
	"corner_kicks":      func(r *store.PlayerMatchRecord) any { return &r.CornerKicks },
	"corners":           func(r *store.PlayerMatchRecord) any { return &r.CornerKicks },

	"tackles":           func(r *store.PlayerMatchRecord) any { return &r.Tackles },
	"tackles_won":       func(r *store.PlayerMatchRecord) any { return &r.TacklesWon },
	"tackles_def_3rd":   func(r *store.PlayerMatchRecord) any { return &r.TacklesDef3rd },
	"tackles_mid_3rd":   func(r *store.PlayerMatchRecord) any { return &r.TacklesMid3rd },
	"tackles_att_3rd":   func(r *store.PlayerMatchRecord) any { return &r.TacklesAtt3rd },
	"challenge_tackles": func(r *store.PlayerMatchRecord) any { return &r.ChallengeTackles },
	"challenges":        func(r *store.PlayerMatchRecord) any { return &r.Challenges },
	"blocks":            func(r *store.PlayerMatchRecord) any { return &r.Blocks },
	"blocked_shots":     func(r *store.PlayerMatchRecord) any { return &r.BlockedShots },
	"interceptions":     func(r *store.PlayerMatchRecord) any { return &r.Interceptions },
	"clearances":        func(r *store.PlayerMatchRecord) any { return &r.Clearances },
	"errors":            func(r *store.PlayerMatchRecord) any { return &r.Errors },

	"touches":                      func(r *store.PlayerMatchRecord) any { return &r.Touches },
	"touches_def_pen_area":         func(r *store.PlayerMatchRecord) any { return &r.TouchesDefPenArea },
	"touches_def_3rd":              func(r *store.PlayerMatchRecord) any { return &r.TouchesDef3rd },
	"touches_mid_3rd":              func(r *store.PlayerMatchRecord) any { return &r.TouchesMid3rd },
	"touches_att_3rd":              func(r *store.PlayerMatchRecord) any { return &r.TouchesAtt3rd },
	"touches_att_pen_area":         func(r *store.PlayerMatchRecord) any { return &r.TouchesAttPenArea },
	"take_ons":                     func(r *store.PlayerMatchRecord) any { return &r.TakeOns },
	"dribbles":                     func(r *store.PlayerMatchRecord) any { return &r.TakeOns },
	"take_ons_won":                 func(r *store.PlayerMatchRecord) any { return &r.TakeOnsWon },
	"dribbles_completed":           func(r *store.PlayerMatchRecord) any { return &r.TakeOnsWon },
	"carries":                      func(r *store.PlayerMatchRecord) any { return &r.Carries },
	"carries_distance":             func(r *store.PlayerMatchRecord) any { return &r.CarriesDistance },
	"carry_distance":               func(r *store.PlayerMatchRecord) any { return &r.CarriesDistance },
	"carries_progressive_distance": func(r *store.PlayerMatchRecord) any { return &r.CarriesProgressiveDistance },
	"progressive_carries":          func(r *store.PlayerMatchRecord) any { return &r.ProgressiveCarries },
	"carries_progressive":          func(r *store.PlayerMatchRecord) any { return &r.ProgressiveCarries },
	"miscontrols":                  func(r *store.PlayerMatchRecord) any { return &r.Miscontrols },
	"dispossessed":                 func(r *store.PlayerMatchRecord) any { return &r.Dispossessed },
	"passes_received":              func(r *store.PlayerMatchRecord) any { return &r.PassesReceived },
	"progressive_passes_received":  func(r *store.PlayerMatchRecord) any { return &r.ProgressivePassesReceived },

	"minutes":         func(r *store.PlayerMatchRecord) any { return &r.Minutes },
	"fouls":           func(r *store.PlayerMatchRecord) any { return &r.Fouls },
	"fouls_committed": func(r *store.PlayerMatchRecord) any { return &r.Fouls },
	"fouled":          func(r *store.PlayerMatchRecord) any { return &r.Fouled },
	"fouls_drawn":     func(r *store.PlayerMatchRecord) any { return &r.Fouled },
	"offsides":        func(r *store.PlayerMatchRecord) any { return &r.Offsides },
	"pens_won":        func(r *store.PlayerMatchRecord) any { return &r.PensWon },
	"pens_conceded":   func(r *store.PlayerMatchRecord) any { return &r.PensConceded },
	"own_goals":       func(r *store.PlayerMatchRecord) any { return &r.OwnGoals },
	"ball_recoveries": func(r *store.PlayerMatchRecord) any { return &r.BallRecoveries },
	"aerials_won":     func(r *store.PlayerMatchRecord) any { return &r.AerialsWon },
	"aerials_lost":    func(r *store.PlayerMatchRecord) any { return &r.AerialsLost },

	"gk_shots_on_target_against":      func(r *store.PlayerMatchRecord) any { return &r.GKShotsOnTargetAgainst },
	"gk_goals_against":                func(r *store.PlayerMatchRecord) any { return &r.GKGoalsAgainst },
	"gk_saves":                        func(r *store.PlayerMatchRecord) any { return &r.GKSaves },
	"gk_save_pct":                     func(r *store.PlayerMatchRecord) any { return &r.GKSavePct },
	"gk_psxg":                         func(r *store.PlayerMatchRecord) any { return &r.GKPSxG },
	"gk_crosses_stopped":              func(r *store.PlayerMatchRecord) any { return &r.GKCrossesStopped },
	"gk_def_actions_outside_pen_area": func(r *store.PlayerMatchRecord) any { return &r.GKDefActionsOutsidePenArea },
}

// identitySetters fill the string identity columns of a player row.
var playerIdentitySetters = map[string]func(*store.PlayerMatchRecord) *sql.NullString{
	"shirtnumber":  func(r *store.PlayerMatchRecord) *sql.NullString { return &r.ShirtNumber },
	"shirt_number": func(r *store.PlayerMatchRecord) *sql.NullString { return &r.ShirtNumber },
	"nationality":  func(r *store.PlayerMatchRecord) *sql.NullString { return &r.Nation },
	"nation":       func(r *store.PlayerMatchRecord) *sql.NullString { return &r.Nation },
	"position":     func(r *store.PlayerMatchRecord) *sql.NullString { return &r.Position },
	"age":          func(r *store.PlayerMatchRecord) *sql.NullString { return &r.Age },
}

// assign parses text into the field behind ptr. The field type decides the
// parse; a value that will not parse leaves the field untouched.
func assign(ptr any, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	switch field := ptr.(type) {
	case *sql.NullInt32:
		if n, ok := parseInt(text); ok {
			field.Int32 = int32(n)
			field.Valid = true
		}
	case *sql.NullFloat64:
		if f, ok := parseFloat(text); ok {
			field.Float64 = f
			field.Valid = true
		}
	case *sql.NullString:
		field.String = text
		field.Valid = true
	}
}

func parseInt(text string) (int, bool) {
	text = strings.ReplaceAll(text, ",", "")
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloat(text string) (float64, bool) {
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSuffix(text, "%")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
