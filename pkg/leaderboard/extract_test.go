package leaderboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
)

var dashHeaders = []string{"PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION", "FG3A", "FG3_PCT", "PTS"}

// sixShooters has FG3A values [0,2,3,1,5,0]
func sixShooters(t *testing.T) *leaderboard.Table {
	t.Helper()
	rows := [][]interface{}{
		{1.0, "Zero Attempts", "AAA", 0.0, 1.0, 10.1},
		{2.0, "Two Attempts", "BBB", 2.0, 0.41, 20.2},
		{3.0, "Three Attempts", "CCC", 3.0, 0.455, 30.3},
		{4.0, "One Attempt", "DDD", 1.0, 0.38, 15.5},
		{5.0, "Five Attempts", "EEE", 5.0, 0.43, 25.0},
		{6.0, "Also Zero", "FFF", 0.0, 0.0, 5.0},
	}
	table, err := leaderboard.NewTable("LeagueDashPlayerStats", dashHeaders, rows, nil)
	require.NoError(t, err)
	return table
}

func threePointQuery() leaderboard.Query {
	return leaderboard.Query{
		StatColumn:        "FG3_PCT",
		IDColumn:          "PLAYER_ID",
		NameColumn:        "PLAYER_NAME",
		AffiliationColumn: "TEAM_ABBREVIATION",
		Qualifier:         &leaderboard.Qualifier{Column: "FG3A", Minimum: 1},
		Limit:             5,
		Format:            leaderboard.FormatPercent,
	}
}

func TestExtract_QualifierExcludesZeroAttempts(t *testing.T) {
	entries, err := leaderboard.Extract(sixShooters(t), threePointQuery())
	require.NoError(t, err)

	require.Len(t, entries, 4)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Three Attempts", "Five Attempts", "Two Attempts", "One Attempt"}, names)
	assert.Equal(t, "45.5%", entries[0].Value)
	assert.Equal(t, int64(3), entries[0].ID)
	assert.Equal(t, "CCC", entries[0].Affiliation)
}

func TestExtract_SortedDescendingAndTruncated(t *testing.T) {
	q := threePointQuery()
	q.Qualifier = nil
	q.StatColumn = "PTS"
	q.Format = leaderboard.FormatPlain
	q.Limit = 3

	entries, err := leaderboard.Extract(sixShooters(t), q)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "30.3", entries[0].Value)
	assert.Equal(t, "25.0", entries[1].Value)
	assert.Equal(t, "20.2", entries[2].Value)
}

func TestExtract_Ascending(t *testing.T) {
	q := threePointQuery()
	q.Qualifier = nil
	q.StatColumn = "PTS"
	q.Format = leaderboard.FormatPlain
	q.Ascending = true
	q.Limit = 2

	entries, err := leaderboard.Extract(sixShooters(t), q)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "5.0", entries[0].Value)
	assert.Equal(t, "10.1", entries[1].Value)
}

func TestExtract_ResultSizeIsMinOfLimitAndQualifying(t *testing.T) {
	for _, limit := range []int{1, 2, 4, 5, 10} {
		q := threePointQuery()
		q.Limit = limit

		entries, err := leaderboard.Extract(sixShooters(t), q)
		require.NoError(t, err)

		want := limit
		if want > 4 {
			want = 4
		}
		assert.Len(t, entries, want, "limit %d", limit)
	}
}

func TestExtract_StableTieBreak(t *testing.T) {
	rows := [][]interface{}{
		{10.0, "First", "AAA", 24.5},
		{11.0, "Leader", "BBB", 30.0},
		{12.0, "Second", "CCC", 24.5},
		{13.0, "Third", "DDD", 24.5},
	}
	table, err := leaderboard.NewTable("LeagueLeaders", []string{"PLAYER_ID", "PLAYER", "TEAM", "PTS"}, rows, nil)
	require.NoError(t, err)

	entries, err := leaderboard.Extract(table, leaderboard.Query{
		StatColumn:        "PTS",
		IDColumn:          "PLAYER_ID",
		NameColumn:        "PLAYER",
		AffiliationColumn: "TEAM",
		Limit:             5,
	})
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.Equal(t, "Leader", entries[0].Name)
	assert.Equal(t, "First", entries[1].Name)
	assert.Equal(t, "Second", entries[2].Name)
	assert.Equal(t, "Third", entries[3].Name)
}

func TestExtract_Idempotent(t *testing.T) {
	table := sixShooters(t)
	first, err := leaderboard.Extract(table, threePointQuery())
	require.NoError(t, err)
	second, err := leaderboard.Extract(table, threePointQuery())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// input order untouched
	assert.Equal(t, "Zero Attempts", table.Rows[0][1].Text())
}

func TestExtract_EmptyTable(t *testing.T) {
	table, err := leaderboard.NewTable("LeagueDashPlayerStats", dashHeaders, nil, nil)
	require.NoError(t, err)

	entries, err := leaderboard.Extract(table, threePointQuery())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExtract_NullStatsSortLast(t *testing.T) {
	rows := [][]interface{}{
		{1.0, "No Pct", "AAA", 3.0, nil, 1.0},
		{2.0, "Has Pct", "BBB", 3.0, 0.333, 1.0},
	}
	table, err := leaderboard.NewTable("LeagueDashPlayerStats", dashHeaders, rows, nil)
	require.NoError(t, err)

	entries, err := leaderboard.Extract(table, threePointQuery())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Has Pct", entries[0].Name)
	assert.Equal(t, "No Pct", entries[1].Name)
	assert.Equal(t, "", entries[1].Value)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *leaderboard.Query)
		wantErr error
	}{
		{"zero limit", func(q *leaderboard.Query) { q.Limit = 0 }, leaderboard.ErrInvalidLimit},
		{"negative limit", func(q *leaderboard.Query) { q.Limit = -5 }, leaderboard.ErrInvalidLimit},
		{"missing stat column", func(q *leaderboard.Query) { q.StatColumn = "REB" }, leaderboard.ErrMissingColumn},
		{"missing id column", func(q *leaderboard.Query) { q.IDColumn = "TEAM_ID" }, leaderboard.ErrMissingColumn},
		{"missing name column", func(q *leaderboard.Query) { q.NameColumn = "PLAYER" }, leaderboard.ErrMissingColumn},
		{"missing affiliation column", func(q *leaderboard.Query) { q.AffiliationColumn = "TEAM" }, leaderboard.ErrMissingColumn},
		{"missing qualifier column", func(q *leaderboard.Query) { q.Qualifier.Column = "FTA" }, leaderboard.ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := threePointQuery()
			tt.mutate(&q)

			_, err := leaderboard.Extract(sixShooters(t), q)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtract_NonNumericStat(t *testing.T) {
	rows := [][]interface{}{
		{1.0, "Bad Row", "AAA", "n/a"},
	}
	table, err := leaderboard.NewTable("LeagueLeaders", []string{"PLAYER_ID", "PLAYER", "TEAM", "PTS"}, rows, nil)
	require.NoError(t, err)

	_, err = leaderboard.Extract(table, leaderboard.Query{
		StatColumn: "PTS",
		IDColumn:   "PLAYER_ID",
		NameColumn: "PLAYER",
		Limit:      5,
	})
	assert.ErrorIs(t, err, leaderboard.ErrNotNumeric)
}

func TestFormat_Apply(t *testing.T) {
	tests := []struct {
		name   string
		format leaderboard.Format
		in     float64
		want   string
	}{
		{"percent", leaderboard.FormatPercent, 0.478, "47.8%"},
		{"percent perfect", leaderboard.FormatPercent, 1.0, "100.0%"},
		{"percent zero", leaderboard.FormatPercent, 0, "0.0%"},
		{"plain rounds half up", leaderboard.FormatPlain, 27.25, "27.3"},
		{"plain", leaderboard.FormatPlain, 27.3, "27.3"},
		{"plain integral", leaderboard.FormatPlain, 12, "12.0"},
		{"plain rounds down", leaderboard.FormatPlain, 9.04, "9.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Apply(tt.in))
		})
	}
}
