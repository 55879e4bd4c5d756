package publisher_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleBoard() *models.Scoreboard {
	board := &models.Scoreboard{}
	board.Scoreboard.GameDate = "2025-01-15"
	board.Scoreboard.Games = []models.LiveGame{
		{
			GameID:         "0022400567",
			GameStatusText: "Final",
			HomeTeam:       models.LiveTeam{TeamName: "Lakers", Score: 112},
			AwayTeam:       models.LiveTeam{TeamName: "Celtics", Score: 108},
		},
	}
	return board
}

func TestPublishScoreboard(t *testing.T) {
	_, client := newRedis(t)
	pub := publisher.NewStreamPublisher(client, "", 0)
	assert.Equal(t, publisher.DefaultScoreboardStream, pub.Stream())

	require.NoError(t, pub.PublishScoreboard(context.Background(), sampleBoard()))

	msgs, err := client.XRange(context.Background(), publisher.DefaultScoreboardStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	values := msgs[0].Values
	assert.Equal(t, "2025-01-15", values["game_date"])
	assert.Equal(t, "1", values["games"])

	_, err = uuid.Parse(values["snapshot_id"].(string))
	assert.NoError(t, err)

	var scores []models.LiveScore
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, "Lakers", scores[0].HomeTeam)
	assert.Equal(t, 112, scores[0].HomeScore)
	assert.Equal(t, "Final", scores[0].GameStatus)
}

func TestPublishScoreboard_CustomStream(t *testing.T) {
	_, client := newRedis(t)
	pub := publisher.NewStreamPublisher(client, "scores.test", 100)

	for i := 0; i < 3; i++ {
		require.NoError(t, pub.PublishScoreboard(context.Background(), sampleBoard()))
	}

	n, err := client.XLen(context.Background(), "scores.test").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPublishScoreboard_RedisDown(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	pub := publisher.NewStreamPublisher(client, "", 0)
	err := pub.PublishScoreboard(context.Background(), sampleBoard())
	assert.Error(t, err)
}
