package nbastats

import "github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"

// Endpoint paths under BaseURL
const (
	EndpointLeagueLeaders         = "leagueleaders"
	EndpointLeagueDashPlayerStats = "leaguedashplayerstats"
	EndpointLeagueDashTeamStats   = "leaguedashteamstats"
	EndpointTeamYearByYearStats   = "teamyearbyyearstats"
	EndpointCommonAllPlayers      = "commonallplayers"
)

var (
	// LeagueLeadersSchema covers the leagueleaders result set
	LeagueLeadersSchema = &leaderboard.Schema{
		Name: "LeagueLeaders",
		Columns: map[string]leaderboard.Kind{
			"PLAYER_ID": leaderboard.KindInt,
			"PLAYER":    leaderboard.KindString,
			"TEAM":      leaderboard.KindString,
			"GP":        leaderboard.KindInt,
			"PTS":       leaderboard.KindFloat,
			"REB":       leaderboard.KindFloat,
			"AST":       leaderboard.KindFloat,
			"STL":       leaderboard.KindFloat,
			"BLK":       leaderboard.KindFloat,
		},
	}

	// PlayerSeasonSchema covers leaguedashplayerstats (Base, PerGame)
	PlayerSeasonSchema = &leaderboard.Schema{
		Name: "LeagueDashPlayerStats",
		Columns: map[string]leaderboard.Kind{
			"PLAYER_ID":         leaderboard.KindInt,
			"PLAYER_NAME":       leaderboard.KindString,
			"TEAM_ABBREVIATION": leaderboard.KindString,
			"GP":                leaderboard.KindInt,
			"PTS":               leaderboard.KindFloat,
			"AST":               leaderboard.KindFloat,
			"REB":               leaderboard.KindFloat,
			"STL":               leaderboard.KindFloat,
			"BLK":               leaderboard.KindFloat,
			"TOV":               leaderboard.KindFloat,
			"FGA":               leaderboard.KindFloat,
			"FG_PCT":            leaderboard.KindFloat,
			"FG3A":              leaderboard.KindFloat,
			"FG3_PCT":           leaderboard.KindFloat,
			"FTA":               leaderboard.KindFloat,
			"FT_PCT":            leaderboard.KindFloat,
		},
	}

	// TeamSeasonSchema covers leaguedashteamstats (Base, PerGame)
	TeamSeasonSchema = &leaderboard.Schema{
		Name: "LeagueDashTeamStats",
		Columns: map[string]leaderboard.Kind{
			"TEAM_ID":   leaderboard.KindInt,
			"TEAM_NAME": leaderboard.KindString,
			"GP":        leaderboard.KindInt,
			"PTS":       leaderboard.KindFloat,
			"REB":       leaderboard.KindFloat,
			"AST":       leaderboard.KindFloat,
			"STL":       leaderboard.KindFloat,
			"BLK":       leaderboard.KindFloat,
			"FG_PCT":    leaderboard.KindFloat,
			"FG3_PCT":   leaderboard.KindFloat,
			"FT_PCT":    leaderboard.KindFloat,
		},
	}

	// TeamHistorySchema covers teamyearbyyearstats; the remaining columns are inferred
	TeamHistorySchema = &leaderboard.Schema{
		Name: "TeamStats",
		Columns: map[string]leaderboard.Kind{
			"TEAM_ID": leaderboard.KindInt,
			"YEAR":    leaderboard.KindString,
		},
	}

	// PlayerDirectorySchema covers commonallplayers
	PlayerDirectorySchema = &leaderboard.Schema{
		Name: "CommonAllPlayers",
		Columns: map[string]leaderboard.Kind{
			"PERSON_ID":          leaderboard.KindInt,
			"DISPLAY_FIRST_LAST": leaderboard.KindString,
		},
	}
)
