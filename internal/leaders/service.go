package leaders

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

// DefaultLimit is the number of entries per leaderboard
const DefaultLimit = 5

// Service ranks players and teams from the stats provider's tables
type Service struct {
	stats    contracts.StatsProvider
	registry *Registry
	limit    int
	log      *zap.Logger
}

// NewService creates a leaders service. A limit below 1 uses DefaultLimit.
func NewService(stats contracts.StatsProvider, registry *Registry, limit int, log *zap.Logger) *Service {
	if registry == nil {
		registry = NewRegistry()
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		stats:    stats,
		registry: registry,
		limit:    limit,
		log:      log.Named("leaders"),
	}
}

// Registry returns the categories the service ranks
func (s *Service) Registry() *Registry {
	return s.registry
}

// Season returns the season the provider is scoped to
func (s *Service) Season() string {
	return s.stats.Season()
}

// PlayerLeaders ranks players for the category behind slug
func (s *Service) PlayerLeaders(ctx context.Context, slug string) ([]models.PlayerLeader, error) {
	cat, err := s.registry.Lookup(slug)
	if err != nil {
		return nil, err
	}

	var table *leaderboard.Table
	if cat.Source == SourceLeagueLeaders {
		table, err = s.stats.LeagueLeaders(ctx, cat.StatCategory)
	} else {
		table, err = s.stats.PlayerSeasonStats(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s table: %w", cat.Key, err)
	}

	return s.rankPlayers(cat, table)
}

// AllPlayerLeaders ranks players for every category, keyed by category key.
// Upstream tables are fetched concurrently; the season table is fetched once
// and shared by every percentage category.
func (s *Service) AllPlayerLeaders(ctx context.Context) (map[string][]models.PlayerLeader, error) {
	cats := s.registry.All()

	var (
		mu          sync.Mutex
		leaderTabs  = make(map[string]*leaderboard.Table)
		seasonTable *leaderboard.Table
		needSeason  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range cats {
		if cat.Source != SourceLeagueLeaders {
			needSeason = true
			continue
		}
		cat := cat
		g.Go(func() error {
			table, err := s.stats.LeagueLeaders(gctx, cat.StatCategory)
			if err != nil {
				return fmt.Errorf("fetching %s table: %w", cat.Key, err)
			}
			mu.Lock()
			leaderTabs[cat.StatCategory] = table
			mu.Unlock()
			return nil
		})
	}
	if needSeason {
		g.Go(func() error {
			table, err := s.stats.PlayerSeasonStats(gctx)
			if err != nil {
				return fmt.Errorf("fetching player season table: %w", err)
			}
			seasonTable = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]models.PlayerLeader, len(cats))
	for _, cat := range cats {
		table := seasonTable
		if cat.Source == SourceLeagueLeaders {
			table = leaderTabs[cat.StatCategory]
		}
		ranked, err := s.rankPlayers(cat, table)
		if err != nil {
			return nil, err
		}
		out[cat.Key] = ranked
	}

	s.log.Debug("ranked all player categories", zap.Int("categories", len(out)))
	return out, nil
}

// TeamLeaders ranks teams for the category behind slug
func (s *Service) TeamLeaders(ctx context.Context, slug string) ([]models.TeamLeader, error) {
	cat, err := s.registry.Lookup(slug)
	if err != nil {
		return nil, err
	}

	table, err := s.stats.TeamSeasonStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching team season table: %w", err)
	}

	return s.rankTeams(cat, table)
}

// AllTeamLeaders ranks teams for every category from a single team table
func (s *Service) AllTeamLeaders(ctx context.Context) (map[string][]models.TeamLeader, error) {
	table, err := s.stats.TeamSeasonStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching team season table: %w", err)
	}

	cats := s.registry.All()
	out := make(map[string][]models.TeamLeader, len(cats))
	for _, cat := range cats {
		ranked, err := s.rankTeams(cat, table)
		if err != nil {
			return nil, err
		}
		out[cat.Key] = ranked
	}
	return out, nil
}

// PlayerDetail finds the first player whose full name contains name
// (case-insensitive) and returns their season line as a one-element slice
func (s *Service) PlayerDetail(ctx context.Context, name string) ([]models.PlayerDetail, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, ErrPlayerNotFound
	}

	directory, err := s.stats.PlayerDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}

	playerID, found, err := findPlayer(directory, needle)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPlayerNotFound
	}

	season, err := s.stats.PlayerSeasonStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching player season table: %w", err)
	}

	row, ok, err := season.FindRow("PLAYER_ID", playerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Debug("player has no season row",
			zap.Int64("player_id", playerID),
			zap.String("season", s.stats.Season()))
		return nil, ErrNoSeasonStats
	}

	detail, err := playerDetail(season, row)
	if err != nil {
		return nil, err
	}
	return []models.PlayerDetail{detail}, nil
}

// TeamHistory returns a franchise's year-by-year records as column-keyed objects
func (s *Service) TeamHistory(ctx context.Context, teamID int64) ([]map[string]interface{}, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTeamID, teamID)
	}

	table, err := s.stats.TeamYearByYear(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team %d history: %w", teamID, err)
	}

	return table.Records(), nil
}

func (s *Service) rankPlayers(cat Category, table *leaderboard.Table) ([]models.PlayerLeader, error) {
	entries, err := leaderboard.Extract(table, cat.PlayerQuery(s.limit))
	if err != nil {
		return nil, fmt.Errorf("ranking %s: %w", cat.Key, err)
	}

	out := make([]models.PlayerLeader, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.PlayerLeader{
			PlayerName: e.Name,
			PlayerID:   e.ID,
			TeamName:   e.Affiliation,
			StatValue:  e.Value,
		})
	}
	return out, nil
}

func (s *Service) rankTeams(cat Category, table *leaderboard.Table) ([]models.TeamLeader, error) {
	entries, err := leaderboard.Extract(table, cat.TeamQuery(s.limit))
	if err != nil {
		return nil, fmt.Errorf("ranking team %s: %w", cat.Key, err)
	}

	out := make([]models.TeamLeader, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.TeamLeader{
			TeamName:  e.Name,
			TeamID:    e.ID,
			StatValue: e.Value,
		})
	}
	return out, nil
}

// findPlayer returns the PERSON_ID of the first directory row whose
// DISPLAY_FIRST_LAST contains needle
func findPlayer(directory *leaderboard.Table, needle string) (int64, bool, error) {
	nameIdx, ok := directory.Index("DISPLAY_FIRST_LAST")
	if !ok {
		return 0, false, fmt.Errorf("%s: %w: DISPLAY_FIRST_LAST", directory.Name, leaderboard.ErrMissingColumn)
	}
	idIdx, ok := directory.Index("PERSON_ID")
	if !ok {
		return 0, false, fmt.Errorf("%s: %w: PERSON_ID", directory.Name, leaderboard.ErrMissingColumn)
	}

	for _, row := range directory.Rows {
		if !strings.Contains(strings.ToLower(row[nameIdx].Text()), needle) {
			continue
		}
		id, ok, err := row[idIdx].Number()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		return int64(id), true, nil
	}
	return 0, false, nil
}

// playerDetail coerces one season row into the detail response.
// Null statistics render as zero.
func playerDetail(season *leaderboard.Table, row int) (models.PlayerDetail, error) {
	var firstErr error
	text := func(col string) string {
		v, err := season.Get(row, col)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v.Text()
	}
	number := func(col string, kind leaderboard.Kind) leaderboard.Value {
		v, err := season.Get(row, col)
		if err == nil {
			v, err = leaderboard.Coerce(v.Interface(), kind)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}
	float := func(col string) float64 {
		n, _, err := number(col, leaderboard.KindFloat).Number()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return n
	}

	gp, _, gpErr := number("GP", leaderboard.KindInt).Number()
	if gpErr != nil && firstErr == nil {
		firstErr = gpErr
	}

	detail := models.PlayerDetail{
		PlayerName:       text("PLAYER_NAME"),
		TeamAbbreviation: text("TEAM_ABBREVIATION"),
		GP:               int64(gp),
		PTS:              float("PTS"),
		AST:              float("AST"),
		REB:              float("REB"),
		STL:              float("STL"),
		BLK:              float("BLK"),
		FGPct:            float("FG_PCT"),
		FG3Pct:           float("FG3_PCT"),
		FTPct:            float("FT_PCT"),
		TOV:              float("TOV"),
	}
	if firstErr != nil {
		return models.PlayerDetail{}, fmt.Errorf("building player detail: %w", firstErr)
	}
	return detail, nil
}
