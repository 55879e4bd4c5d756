package leaders

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
)

// Source identifies which upstream table a category ranks
type Source int

const (
	// SourceLeagueLeaders is the leagueleaders table, fetched per stat
	SourceLeagueLeaders Source = iota
	// SourcePlayerSeason is the leaguedashplayerstats table, shared by all percentage categories
	SourcePlayerSeason
)

// Category describes one ranked statistic
type Category struct {
	Key          string // response key in the "all" aggregates
	Slug         string // route segment
	Source       Source
	StatCategory string // leagueleaders StatCategory parameter
	StatColumn   string
	Qualifier    *leaderboard.Qualifier
	Format       leaderboard.Format
}

// PlayerQuery builds the extraction query for the category's player table
func (c Category) PlayerQuery(limit int) leaderboard.Query {
	q := leaderboard.Query{
		StatColumn: c.StatColumn,
		IDColumn:   "PLAYER_ID",
		Qualifier:  c.Qualifier,
		Limit:      limit,
		Format:     c.Format,
	}
	switch c.Source {
	case SourceLeagueLeaders:
		q.NameColumn = "PLAYER"
		q.AffiliationColumn = "TEAM"
	default:
		q.NameColumn = "PLAYER_NAME"
		q.AffiliationColumn = "TEAM_ABBREVIATION"
	}
	return q
}

// TeamQuery builds the extraction query against the team season table.
// Attempt floors are per player and do not apply to teams.
func (c Category) TeamQuery(limit int) leaderboard.Query {
	return leaderboard.Query{
		StatColumn: c.StatColumn,
		IDColumn:   "TEAM_ID",
		NameColumn: "TEAM_NAME",
		Limit:      limit,
		Format:     c.Format,
	}
}

// Registry holds the ranked categories in display order
type Registry struct {
	ordered []Category
	bySlug  map[string]Category
}

// NewRegistry creates a registry with every supported category
func NewRegistry() *Registry {
	r := &Registry{
		bySlug: make(map[string]Category),
	}

	r.Register(Category{Key: "points", Slug: "ppg", Source: SourceLeagueLeaders, StatCategory: "PTS", StatColumn: "PTS"})
	r.Register(Category{Key: "rebounds", Slug: "rpg", Source: SourceLeagueLeaders, StatCategory: "REB", StatColumn: "REB"})
	r.Register(Category{Key: "assists", Slug: "apg", Source: SourceLeagueLeaders, StatCategory: "AST", StatColumn: "AST"})
	r.Register(Category{Key: "steals", Slug: "spg", Source: SourceLeagueLeaders, StatCategory: "STL", StatColumn: "STL"})
	r.Register(Category{Key: "blocks", Slug: "bpg", Source: SourceLeagueLeaders, StatCategory: "BLK", StatColumn: "BLK"})

	r.Register(Category{
		Key: "fieldgoal", Slug: "fgp", Source: SourcePlayerSeason, StatColumn: "FG_PCT",
		Qualifier: &leaderboard.Qualifier{Column: "FGA", Minimum: 5},
		Format:    leaderboard.FormatPercent,
	})
	r.Register(Category{
		Key: "threepoint", Slug: "3pp", Source: SourcePlayerSeason, StatColumn: "FG3_PCT",
		Qualifier: &leaderboard.Qualifier{Column: "FG3A", Minimum: 1},
		Format:    leaderboard.FormatPercent,
	})
	r.Register(Category{
		Key: "freethrow", Slug: "ftp", Source: SourcePlayerSeason, StatColumn: "FT_PCT",
		Qualifier: &leaderboard.Qualifier{Column: "FTA", Minimum: 1},
		Format:    leaderboard.FormatPercent,
	})

	return r
}

// Register adds a category. Registering an existing slug replaces it in place.
func (r *Registry) Register(c Category) {
	if _, ok := r.bySlug[c.Slug]; ok {
		for i := range r.ordered {
			if r.ordered[i].Slug == c.Slug {
				r.ordered[i] = c
			}
		}
	} else {
		r.ordered = append(r.ordered, c)
	}
	r.bySlug[c.Slug] = c
}

// Lookup retrieves a category by route slug
func (r *Registry) Lookup(slug string) (Category, error) {
	c, ok := r.bySlug[slug]
	if !ok {
		return Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, slug)
	}
	return c, nil
}

// All returns every category in display order
func (r *Registry) All() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Slugs returns every route slug in display order
func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.ordered))
	for _, c := range r.ordered {
		slugs = append(slugs, c.Slug)
	}
	return slugs
}
