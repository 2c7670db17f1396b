package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"tvrip/internal/logging"
)

const defaultBaseURL = "https://api4.thetvdb.com/v4"

// Sentinel errors for TVDB API responses.
var (
	ErrNotFound     = errors.New("series not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or expired API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client is a TheTVDB API v4 client with JWT authentication.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	// JWT token management (thread-safe)
	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = logging.NewComponentLogger(log, "tvdb")
	}
}

// New creates a TVDB client. The API key may be empty; the first request
// will then fail with ErrUnauthorized.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// login authenticates with TVDB and stores the JWT token.
func (c *Client) login(ctx context.Context) error {
	body := map[string]string{"apikey": c.apiKey}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: %s", resp.Status)
	}

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}

	if loginResp.Data.Token == "" {
		return errors.New("login response missing token")
	}

	c.mu.Lock()
	c.token = loginResp.Data.Token
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug("authenticated with TVDB")
	}

	return nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.RLock()
	hasToken := c.token != ""
	c.mu.RUnlock()

	if !hasToken {
		return c.login(ctx)
	}
	return nil
}

// doRequest performs an authenticated request, refreshing the token once
// on a 401.
func (c *Client) doRequest(ctx context.Context, method, endpoint string) (*http.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.doAuthenticatedRequest(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		if c.log != nil {
			c.log.Debug("token expired, refreshing")
		}

		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()

		if err := c.login(ctx); err != nil {
			return nil, err
		}

		return c.doAuthenticatedRequest(ctx, method, endpoint)
	}

	return resp, nil
}

func (c *Client) doAuthenticatedRequest(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	return resp, nil
}

// Search looks up series by name.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := "/search?query=" + url.QueryEscape(query) + "&type=series"
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResp.Data))
	for _, item := range searchResp.Data {
		tvdbID, _ := strconv.Atoi(item.TVDBID)
		if tvdbID == 0 {
			// objectID carries the id as "series-12345" when tvdb_id is blank.
			if len(item.ObjectID) > 7 && item.ObjectID[:7] == "series-" {
				tvdbID, _ = strconv.Atoi(item.ObjectID[7:])
			}
		}
		year, _ := strconv.Atoi(item.Year)

		results = append(results, SearchResult{
			ID:       tvdbID,
			Name:     item.Name,
			Year:     year,
			Status:   item.Status,
			Overview: item.Overview,
			Network:  item.Network,
		})
	}

	if c.log != nil {
		c.log.Debug("search completed", logging.String("query", query), logging.Int("results", len(results)))
	}

	return results, nil
}

// Series fetches series metadata by TVDB ID.
func (c *Client) Series(ctx context.Context, id int) (*Series, error) {
	endpoint := fmt.Sprintf("/series/%d", id)
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var seriesResp seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&seriesResp); err != nil {
		return nil, fmt.Errorf("decode series response: %w", err)
	}

	var year int
	if len(seriesResp.Data.FirstAired) >= 4 {
		year, _ = strconv.Atoi(seriesResp.Data.FirstAired[:4])
	}

	return &Series{
		ID:       seriesResp.Data.ID,
		Name:     seriesResp.Data.Name,
		Year:     year,
		Status:   seriesResp.Data.Status.Name,
		Overview: seriesResp.Data.Overview,
	}, nil
}

// Episodes fetches all episodes of a series in the default order,
// following pagination.
func (c *Client) Episodes(ctx context.Context, seriesID int) ([]Episode, error) {
	var allEpisodes []Episode
	page := 0

	for {
		endpoint := fmt.Sprintf("/series/%d/episodes/default?page=%d", seriesID, page)
		resp, err := c.doRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}

		if err := c.checkResponse(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}

		var episodesResp episodesResponse
		if err := json.NewDecoder(resp.Body).Decode(&episodesResp); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode episodes response: %w", err)
		}
		resp.Body.Close()

		for _, ep := range episodesResp.Data.Episodes {
			allEpisodes = append(allEpisodes, Episode{
				ID:      ep.ID,
				Season:  ep.SeasonNumber,
				Episode: ep.Number,
				Name:    ep.Name,
			})
		}

		if episodesResp.Links.Next == "" {
			break
		}
		page++

		// Safety limit against a server that never stops paginating.
		if page > 100 {
			if c.log != nil {
				c.log.Warn("hit pagination limit", logging.Int("series_id", seriesID))
			}
			break
		}
	}

	if c.log != nil {
		c.log.Debug("fetched episodes", logging.Int("series_id", seriesID), logging.Int("count", len(allEpisodes)))
	}

	return allEpisodes, nil
}

// Seasons returns the season numbers of a series in ascending order.
func (c *Client) Seasons(ctx context.Context, seriesID int) ([]int, error) {
	episodes, err := c.Episodes(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	seen := map[int]bool{}
	var seasons []int
	for _, episode := range episodes {
		if !seen[episode.Season] {
			seen[episode.Season] = true
			seasons = append(seasons, episode.Season)
		}
	}
	sort.Ints(seasons)
	return seasons, nil
}

// SeasonEpisodeNames returns the episode names of one season, ordered by
// episode number and indexed from episode 1.
func (c *Client) SeasonEpisodeNames(ctx context.Context, seriesID, season int) ([]string, error) {
	episodes, err := c.Episodes(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	var matched []Episode
	for _, episode := range episodes {
		if episode.Season == season {
			matched = append(matched, episode)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("series %d season %d: %w", seriesID, season, ErrNotFound)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Episode < matched[j].Episode })

	names := make([]string, 0, len(matched))
	for _, episode := range matched {
		names = append(names, episode.Name)
	}
	return names, nil
}

// checkResponse maps HTTP error statuses to sentinel errors.
func (c *Client) checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TVDB API error: %s", resp.Status)
	}
}
