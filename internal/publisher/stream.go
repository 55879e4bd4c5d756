package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

// DefaultScoreboardStream receives every live scoreboard snapshot
const DefaultScoreboardStream = "games.scoreboard.basketball_nba"

// StreamPublisher publishes scoreboard snapshots to a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher creates a new stream publisher. maxLen caps the stream
// approximately; 0 leaves it unbounded.
func NewStreamPublisher(client *redis.Client, stream string, maxLen int64) *StreamPublisher {
	if stream == "" {
		stream = DefaultScoreboardStream
	}
	return &StreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Stream returns the stream key snapshots are appended to
func (p *StreamPublisher) Stream() string {
	return p.stream
}

// PublishScoreboard appends one snapshot of the scoreboard's flattened scores
func (p *StreamPublisher) PublishScoreboard(ctx context.Context, board *models.Scoreboard) error {
	scores := board.LiveScores()

	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshaling scoreboard: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"snapshot_id":  uuid.NewString(),
			"game_date":    board.Scoreboard.GameDate,
			"games":        len(scores),
			"data":         string(data),
			"published_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.stream, err)
	}
	return nil
}
