package nbastats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/retry"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
)

const (
	BaseURL = "https://stats.nba.com/stats"

	LeagueID          = "00"
	DefaultSeasonType = "Regular Season"
)

// StatusError is returned for non-200 upstream responses
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stats.nba.com %s error: status=%d, body=%s", e.Endpoint, e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if repeated
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	Season            string
	SeasonType        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int
	RetryDelay        time.Duration
	HTTPClient        *http.Client
}

// Client handles stats.nba.com requests
type Client struct {
	baseURL    string
	season     string
	seasonType string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      *retry.Policy
	log        *zap.Logger
}

// New creates a new stats.nba.com client
func New(opts Options, log *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Season == "" {
		opts.Season = CurrentSeason(time.Now())
	}
	if opts.SeasonType == "" {
		opts.SeasonType = DefaultSeasonType
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 4
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:    opts.BaseURL,
		season:     opts.Season,
		seasonType: opts.SeasonType,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		retry:      retry.NewPolicy(opts.MaxAttempts, opts.RetryDelay),
		log:        log.Named("nbastats"),
	}
}

// Season returns the season every season-scoped request is made for
func (c *Client) Season() string {
	return c.season
}

// LeagueLeaders fetches per-game league leaders ranked by statCategory (PTS, REB, ...)
func (c *Client) LeagueLeaders(ctx context.Context, statCategory string) (*leaderboard.Table, error) {
	params := url.Values{}
	params.Set("ActiveFlag", "")
	params.Set("LeagueID", LeagueID)
	params.Set("PerMode", "PerGame")
	params.Set("Scope", "S")
	params.Set("Season", c.season)
	params.Set("SeasonType", c.seasonType)
	params.Set("StatCategory", statCategory)

	return c.fetchTable(ctx, EndpointLeagueLeaders, params, LeagueLeadersSchema)
}

// PlayerSeasonStats fetches every player's per-game averages for the season
func (c *Client) PlayerSeasonStats(ctx context.Context) (*leaderboard.Table, error) {
	params := c.dashParams()
	params.Set("College", "")
	params.Set("Country", "")
	params.Set("DraftPick", "")
	params.Set("DraftYear", "")
	params.Set("Height", "")
	params.Set("PlayerExperience", "")
	params.Set("PlayerPosition", "")
	params.Set("Weight", "")

	return c.fetchTable(ctx, EndpointLeagueDashPlayerStats, params, PlayerSeasonSchema)
}

// TeamSeasonStats fetches every team's per-game averages for the season
func (c *Client) TeamSeasonStats(ctx context.Context) (*leaderboard.Table, error) {
	return c.fetchTable(ctx, EndpointLeagueDashTeamStats, c.dashParams(), TeamSeasonSchema)
}

// TeamYearByYear fetches a franchise's season-by-season totals
func (c *Client) TeamYearByYear(ctx context.Context, teamID int64) (*leaderboard.Table, error) {
	params := url.Values{}
	params.Set("LeagueID", LeagueID)
	params.Set("PerMode", "Totals")
	params.Set("SeasonType", c.seasonType)
	params.Set("TeamID", strconv.FormatInt(teamID, 10))

	return c.fetchTable(ctx, EndpointTeamYearByYearStats, params, TeamHistorySchema)
}

// PlayerDirectory fetches every player in league history
func (c *Client) PlayerDirectory(ctx context.Context) (*leaderboard.Table, error) {
	params := url.Values{}
	params.Set("IsOnlyCurrentSeason", "0")
	params.Set("LeagueID", LeagueID)
	params.Set("Season", c.season)

	return c.fetchTable(ctx, EndpointCommonAllPlayers, params, PlayerDirectorySchema)
}

// dashParams are the filters the leaguedash endpoints reject requests without
func (c *Client) dashParams() url.Values {
	params := url.Values{}
	for _, empty := range []string{
		"Conference", "DateFrom", "DateTo", "Division", "GameScope", "GameSegment",
		"Location", "Outcome", "SeasonSegment", "ShotClockRange", "StarterBench",
		"VsConference", "VsDivision",
	} {
		params.Set(empty, "")
	}
	for _, zero := range []string{"LastNGames", "Month", "OpponentTeamID", "PORound", "Period", "TeamID", "TwoWay"} {
		params.Set(zero, "0")
	}
	params.Set("LeagueID", LeagueID)
	params.Set("MeasureType", "Base")
	params.Set("PaceAdjust", "N")
	params.Set("PerMode", "PerGame")
	params.Set("PlusMinus", "N")
	params.Set("Rank", "N")
	params.Set("Season", c.season)
	params.Set("SeasonType", c.seasonType)
	return params
}

// fetchTable requests an endpoint and decodes its first result set against schema
func (c *Client) fetchTable(ctx context.Context, endpoint string, params url.Values, schema *leaderboard.Schema) (*leaderboard.Table, error) {
	var payload envelope
	if err := c.fetch(ctx, endpoint, params, &payload); err != nil {
		return nil, err
	}

	rs, err := payload.first()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	return rs.Table(schema)
}

// fetch makes a rate limited GET request with retries and decodes the JSON body
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	return c.retry.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return retry.Permanent(fmt.Errorf("waiting for rate limiter: %w", err))
		}

		start := time.Now()
		err := c.do(ctx, endpoint, reqURL, out)

		fields := []zap.Field{
			zap.String("endpoint", endpoint),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			c.log.Warn("upstream request failed", append(fields, zap.Error(err))...)

			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Retryable() {
				return retry.Permanent(err)
			}
			return err
		}

		c.log.Debug("upstream request", fields...)
		return nil
	})
}

func (c *Client) do(ctx context.Context, endpoint, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return retry.Permanent(fmt.Errorf("creating request: %w", err))
	}
	setStatsHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: string(body)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decoding response: %w", err))
	}

	return nil
}

// setStatsHeaders sets the browser-like headers stats.nba.com requires;
// requests without them hang until timeout
func setStatsHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")
}
