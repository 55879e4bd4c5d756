package models

// PlayerLeader is one row of a player leaderboard
type PlayerLeader struct {
	PlayerName string `json:"player_name"`
	PlayerID   int64  `json:"player_id"`
	TeamName   string `json:"team_name"`
	StatValue  string `json:"stat_value"`
}

// TeamLeader is one row of a team leaderboard
type TeamLeader struct {
	TeamName  string `json:"team_name"`
	TeamID    int64  `json:"team_id"`
	StatValue string `json:"stat_value"`
}

// PlayerDetail is a player's current-season per-game line.
// Keys mirror the upstream column names.
type PlayerDetail struct {
	PlayerName       string  `json:"PLAYER_NAME"`
	TeamAbbreviation string  `json:"TEAM_ABBREVIATION"`
	GP               int64   `json:"GP"`
	PTS              float64 `json:"PTS"`
	AST              float64 `json:"AST"`
	REB              float64 `json:"REB"`
	STL              float64 `json:"STL"`
	BLK              float64 `json:"BLK"`
	FGPct            float64 `json:"FG_PCT"`
	FG3Pct           float64 `json:"FG3_PCT"`
	FTPct            float64 `json:"FT_PCT"`
	TOV              float64 `json:"TOV"`
}
