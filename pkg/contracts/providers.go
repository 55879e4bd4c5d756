package contracts

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

// StatsProvider is the tabular statistics source (stats.nba.com)
type StatsProvider interface {
	// Season returns the season label requests are scoped to ("2024-25")
	Season() string

	LeagueLeaders(ctx context.Context, statCategory string) (*leaderboard.Table, error)
	PlayerSeasonStats(ctx context.Context) (*leaderboard.Table, error)
	TeamSeasonStats(ctx context.Context) (*leaderboard.Table, error)
	TeamYearByYear(ctx context.Context, teamID int64) (*leaderboard.Table, error)
	PlayerDirectory(ctx context.Context) (*leaderboard.Table, error)
}

// ScoreboardProvider is the live scoreboard source (cdn.nba.com)
type ScoreboardProvider interface {
	TodaysScoreboard(ctx context.Context) (*models.Scoreboard, error)
}

// ScoreboardPublisher fans scoreboard snapshots out to downstream consumers
type ScoreboardPublisher interface {
	PublishScoreboard(ctx context.Context, board *models.Scoreboard) error
}
