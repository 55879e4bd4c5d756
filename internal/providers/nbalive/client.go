package nbalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/retry"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

const (
	BaseURL = "https://cdn.nba.com/static/json/liveData"

	todaysScoreboardPath = "scoreboard/todaysScoreboard_00.json"

	// the CDN file only refreshes every few seconds
	requestsPerSecond = 5
)

// Client handles cdn.nba.com live data requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      *retry.Policy
	log        *zap.Logger
}

// New creates a new live data client. An empty baseURL uses BaseURL.
func New(baseURL string, timeout time.Duration, policy *retry.Policy, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if policy == nil {
		policy = retry.NewPolicy(1, 0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		retry:   policy,
		log:     log.Named("nbalive"),
	}
}

// TodaysScoreboard fetches whatever the CDN considers today's slate
func (c *Client) TodaysScoreboard(ctx context.Context) (*models.Scoreboard, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, todaysScoreboardPath)

	var board models.Scoreboard
	err := c.retry.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return retry.Permanent(fmt.Errorf("waiting for rate limiter: %w", err))
		}
		return c.fetch(ctx, url, &board)
	})
	if err != nil {
		c.log.Warn("scoreboard fetch failed", zap.Error(err))
		return nil, err
	}

	c.log.Debug("scoreboard fetched",
		zap.String("game_date", board.Scoreboard.GameDate),
		zap.Int("games", len(board.Scoreboard.Games)))

	return &board, nil
}

// fetch makes an HTTP GET request and decodes the JSON body into out
func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return retry.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; FortunaBot/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("NBA live API error: status=%d, body=%s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return err
		}
		return retry.Permanent(err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decoding response: %w", err))
	}

	return nil
}
