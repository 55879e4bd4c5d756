package models

// Scoreboard is the cdn.nba.com live scoreboard document
type Scoreboard struct {
	Meta struct {
		Time string `json:"time"`
	} `json:"meta"`
	Scoreboard struct {
		GameDate   string     `json:"gameDate"`
		LeagueID   string     `json:"leagueId"`
		LeagueName string     `json:"leagueName"`
		Games      []LiveGame `json:"games"`
	} `json:"scoreboard"`
}

// LiveGame is one game on the live scoreboard
type LiveGame struct {
	GameID         string   `json:"gameId"`
	GameCode       string   `json:"gameCode"`
	GameStatus     int      `json:"gameStatus"` // 1 scheduled, 2 live, 3 final
	GameStatusText string   `json:"gameStatusText"`
	Period         int      `json:"period"`
	GameClock      string   `json:"gameClock"`
	GameTimeUTC    string   `json:"gameTimeUTC"`
	HomeTeam       LiveTeam `json:"homeTeam"`
	AwayTeam       LiveTeam `json:"awayTeam"`
}

// LiveTeam is one side of a live game
type LiveTeam struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamCity    string `json:"teamCity"`
	TeamTricode string `json:"teamTricode"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Score       int    `json:"score"`
}

// LiveScore is the flattened score line served to dashboards
type LiveScore struct {
	HomeTeam   string `json:"home_team"`
	HomeScore  int    `json:"home_score"`
	AwayTeam   string `json:"away_team"`
	AwayScore  int    `json:"away_score"`
	GameStatus string `json:"game_status"`
}

// LiveScores flattens the scoreboard's games in feed order
func (s *Scoreboard) LiveScores() []LiveScore {
	scores := make([]LiveScore, 0, len(s.Scoreboard.Games))
	for _, g := range s.Scoreboard.Games {
		scores = append(scores, LiveScore{
			HomeTeam:   g.HomeTeam.TeamName,
			HomeScore:  g.HomeTeam.Score,
			AwayTeam:   g.AwayTeam.TeamName,
			AwayScore:  g.AwayTeam.Score,
			GameStatus: g.GameStatusText,
		})
	}
	return scores
}
