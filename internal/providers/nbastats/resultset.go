package nbastats

import (
	"errors"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
)

var errNoResultSet = errors.New("response has no result set")

// ResultSet is the tabular payload every stats.nba.com endpoint returns
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// envelope covers both shapes: most endpoints return "resultSets",
// leagueleaders returns a single "resultSet"
type envelope struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
	ResultSet  *ResultSet  `json:"resultSet"`
}

func (e *envelope) first() (*ResultSet, error) {
	if e.ResultSet != nil {
		return e.ResultSet, nil
	}
	if len(e.ResultSets) == 0 {
		return nil, errNoResultSet
	}
	return &e.ResultSets[0], nil
}

// Table coerces the result set into a typed table validated against schema
func (rs *ResultSet) Table(schema *leaderboard.Schema) (*leaderboard.Table, error) {
	return leaderboard.NewTable(rs.Name, rs.Headers, rs.RowSet, schema)
}
