package leaderboard_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		kind leaderboard.Kind
		want interface{}
	}{
		{"integral float to int", 82.0, leaderboard.KindInt, int64(82)},
		{"fractional float to int truncates", 27.9, leaderboard.KindInt, int64(27)},
		{"json number to int", json.Number("1629029"), leaderboard.KindInt, int64(1629029)},
		{"numeric string to int", "15", leaderboard.KindInt, int64(15)},
		{"float stays float", 0.478, leaderboard.KindFloat, 0.478},
		{"int to float", 30, leaderboard.KindFloat, 30.0},
		{"json number to float", json.Number("27.3"), leaderboard.KindFloat, 27.3},
		{"string passes through", "LAL", leaderboard.KindString, "LAL"},
		{"number to string", 1610612747.0, leaderboard.KindString, "1610612747"},
		{"null stays null", nil, leaderboard.KindFloat, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := leaderboard.Coerce(tt.raw, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestCoerce_RejectsNonNumeric(t *testing.T) {
	_, err := leaderboard.Coerce("Los Angeles", leaderboard.KindFloat)
	assert.ErrorIs(t, err, leaderboard.ErrNotNumeric)

	_, err = leaderboard.Coerce("LAL", leaderboard.KindInt)
	assert.ErrorIs(t, err, leaderboard.ErrNotNumeric)
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name   string
		column []interface{}
		want   leaderboard.Kind
	}{
		{"all integral", []interface{}{json.Number("82"), json.Number("79")}, leaderboard.KindInt},
		{"one fractional", []interface{}{json.Number("82"), json.Number("0.5")}, leaderboard.KindFloat},
		{"decimal literal", []interface{}{json.Number("27.0")}, leaderboard.KindFloat},
		{"integral floats", []interface{}{12.0, 3.0}, leaderboard.KindInt},
		{"strings", []interface{}{"LAL", "BOS"}, leaderboard.KindString},
		{"mixed string and number", []interface{}{1.0, "x"}, leaderboard.KindString},
		{"nulls ignored", []interface{}{nil, json.Number("3")}, leaderboard.KindInt},
		{"all null", []interface{}{nil, nil}, leaderboard.KindFloat},
		{"bool", []interface{}{true}, leaderboard.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leaderboard.Infer(tt.column))
		})
	}
}

func TestCoerceAuto(t *testing.T) {
	v, err := leaderboard.CoerceAuto(json.Number("62"))
	require.NoError(t, err)
	assert.Equal(t, int64(62), v.Interface())

	v, err = leaderboard.CoerceAuto(json.Number("0.612"))
	require.NoError(t, err)
	assert.Equal(t, 0.612, v.Interface())

	v, err = leaderboard.CoerceAuto("Nikola Jokic")
	require.NoError(t, err)
	assert.Equal(t, "Nikola Jokic", v.Interface())
}

func TestNewTable(t *testing.T) {
	schema := &leaderboard.Schema{
		Name:    "LeagueDashTeamStats",
		Columns: map[string]leaderboard.Kind{"TEAM_ID": leaderboard.KindInt, "TEAM_NAME": leaderboard.KindString, "PTS": leaderboard.KindFloat},
	}

	t.Run("coerces declared and inferred columns", func(t *testing.T) {
		table, err := leaderboard.NewTable("LeagueDashTeamStats",
			[]string{"TEAM_ID", "TEAM_NAME", "GP", "PTS"},
			[][]interface{}{
				{json.Number("1610612747"), "Los Angeles Lakers", json.Number("82"), json.Number("118")},
			}, schema)
		require.NoError(t, err)

		assert.Equal(t, []leaderboard.Kind{leaderboard.KindInt, leaderboard.KindString, leaderboard.KindInt, leaderboard.KindFloat}, table.Kinds)
		rec := table.Record(0)
		assert.Equal(t, int64(1610612747), rec["TEAM_ID"])
		assert.Equal(t, 118.0, rec["PTS"])
		assert.Equal(t, int64(82), rec["GP"])
	})

	t.Run("missing declared column", func(t *testing.T) {
		_, err := leaderboard.NewTable("LeagueDashTeamStats", []string{"TEAM_ID", "TEAM_NAME"}, nil, schema)
		assert.ErrorIs(t, err, leaderboard.ErrMissingColumn)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := leaderboard.NewTable("x", []string{"A", "B"}, [][]interface{}{{1.0}}, nil)
		assert.ErrorIs(t, err, leaderboard.ErrRowShape)
	})

	t.Run("find row", func(t *testing.T) {
		table, err := leaderboard.NewTable("LeagueDashTeamStats",
			[]string{"TEAM_ID", "TEAM_NAME", "PTS"},
			[][]interface{}{
				{json.Number("1"), "A", json.Number("100.5")},
				{json.Number("2"), "B", json.Number("110.5")},
			}, schema)
		require.NoError(t, err)

		r, ok, err := table.FindRow("TEAM_ID", 2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, r)

		_, ok, err = table.FindRow("TEAM_ID", 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
