package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ownerTokenHeader carries the caller's claim on mutable sessions.
const ownerTokenHeader = "X-Owner-Token"

// Wire shapes of the public API. The simulator deliberately declares
// its own copies instead of importing the server's types: it exercises
// the contract a real client sees, nothing more.
type card struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
}

type matchup struct {
	ItemA card `json:"item_a"`
	ItemB card `json:"item_b"`
}

type standing struct {
	Rank   int     `json:"rank"`
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Name   string  `json:"name"`
}

type startReply struct {
	SessionID     string   `json:"session_id"`
	PoolSize      int      `json:"pool_size"`
	TotalMatchups int      `json:"total_matchups"`
	FirstMatchup  *matchup `json:"first_matchup"`
}

type voteReply struct {
	VotesCompleted  int        `json:"votes_completed"`
	TotalMatchups   int        `json:"total_matchups"`
	CurrentRankings []standing `json:"current_rankings"`
	NextMatchup     *matchup   `json:"next_matchup"`
	IsComplete      bool       `json:"is_complete"`
}

type sessionReply struct {
	SessionID       string     `json:"session_id"`
	PoolSize        int        `json:"pool_size"`
	IsComplete      bool       `json:"is_complete"`
	VotesCompleted  int        `json:"votes_completed"`
	TotalMatchups   int        `json:"total_matchups"`
	CurrentRankings []standing `json:"current_rankings"`
	ShareToken      string     `json:"share_token"`
	ShareURL        string     `json:"share_url"`
}

type finalizeReply struct {
	FinalRankings []standing `json:"final_rankings"`
	ShareToken    string     `json:"share_token"`
	ShareURL      string     `json:"share_url"`
}

type poolReply struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Items     []string `json:"items"`
	ItemNames []string `json:"item_names"`
	ShareCode string   `json:"share_code"`
	Public    bool     `json:"public"`
}

// apiError mirrors the server's stable failure envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// client wraps http.Client with the joust API's conventions: JSON
// bodies, the owner token header and the error envelope.
type client struct {
	http    *http.Client
	baseURL string
}

// newClient creates a new API client with timeout.
func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// do performs one request and decodes the JSON reply into out when out
// is non-nil. Non-2xx replies are surfaced as errors carrying the
// server's failure code.
func (c *client) do(ctx context.Context, method, path, ownerToken string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ownerToken != "" {
		req.Header.Set(ownerTokenHeader, ownerToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var fail apiError
		if jsonErr := json.Unmarshal(data, &fail); jsonErr == nil && fail.Error.Code != "" {
			return fmt.Errorf("%s %s: HTTP %d %s: %s",
				method, path, resp.StatusCode, fail.Error.Code, fail.Error.Message)
		}
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to parse response: %w", method, path, err)
	}
	return nil
}

// health checks the liveness endpoint.
func (c *client) health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

// startSession starts a ranking session; poolCode may be empty.
func (c *client) startSession(ctx context.Context, ownerToken string, size int, poolCode string) (*startReply, error) {
	body := map[string]any{"pool_size": size}
	if poolCode != "" {
		body["pool_code"] = poolCode
	}
	var reply startReply
	if err := c.do(ctx, http.MethodPost, "/api/v1/rankings", ownerToken, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// getSession fetches the current state of a session.
func (c *client) getSession(ctx context.Context, id string) (*sessionReply, error) {
	var reply sessionReply
	if err := c.do(ctx, http.MethodGet, "/api/v1/rankings/"+id, "", nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// submitVote votes for winnerID in the session's pending matchup.
func (c *client) submitVote(ctx context.Context, ownerToken, id, winnerID string) (*voteReply, error) {
	body := map[string]any{"winner_id": winnerID}
	var reply voteReply
	if err := c.do(ctx, http.MethodPost, "/api/v1/rankings/"+id+"/votes", ownerToken, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// finalize ends a session early, optionally minting a share link.
func (c *client) finalize(ctx context.Context, ownerToken, id string, shareLink bool) (*finalizeReply, error) {
	body := map[string]any{"generate_share_link": shareLink}
	var reply finalizeReply
	if err := c.do(ctx, http.MethodPost, "/api/v1/rankings/"+id+"/finalize", ownerToken, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// getShared resolves a public share token without any owner claim.
func (c *client) getShared(ctx context.Context, token string) (*sessionReply, error) {
	var reply sessionReply
	if err := c.do(ctx, http.MethodGet, "/api/v1/shared/"+token, "", nil, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// createPool stores a public custom pool over the given items.
func (c *client) createPool(ctx context.Context, ownerToken, name string, items []string) (*poolReply, error) {
	body := map[string]any{"name": name, "items": items, "public": true}
	var reply poolReply
	if err := c.do(ctx, http.MethodPost, "/api/v1/pools", ownerToken, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
