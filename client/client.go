// Package client is a Go consumer of the reaction API.  Client is a thin
// typed HTTP wrapper; ReactionCache adds the optimistic per-movie state
// mirror that front ends use for immediate toggle feedback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/netflim/movie-reactions/internal/model"
)

// ErrBackendUnavailable wraps network-unreachable failures.  Callers
// treat it as "running without a backend" rather than a hard error.
var ErrBackendUnavailable = errors.New("backend unavailable")

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client calls the reaction service on behalf of one session.  The
// session token travels in the X-Session-Id header on every request.
type Client struct {
	baseURL      string
	sessionToken string
	http         *http.Client
}

// New returns a Client for the service at baseURL (e.g.
// "http://localhost:3001") using the given session token.
func New(baseURL, sessionToken string) *Client {
	return &Client{
		baseURL:      baseURL,
		sessionToken: sessionToken,
		http:         &http.Client{Timeout: 5 * time.Second},
	}
}

// SetSessionToken switches the session the client acts as.
func (c *Client) SetSessionToken(token string) { c.sessionToken = token }

// StatusResult is the payload of the status endpoint.
type StatusResult struct {
	IsLiked    model.Reaction   `json:"isLiked"`
	MovieStats model.MovieStats `json:"movieStats"`
}

// LikeResult is the payload returned after recording a reaction.
type LikeResult struct {
	Like       model.LikeEdge   `json:"like"`
	MovieStats model.MovieStats `json:"movieStats"`
}

// DeleteResult is the payload returned after clearing a reaction.
type DeleteResult struct {
	Deleted    bool             `json:"deleted"`
	MovieStats model.MovieStats `json:"movieStats"`
}

// RecordReaction persists the given boolean for the movie, optionally
// caching its metadata server-side.
func (c *Client) RecordReaction(ctx context.Context, movieID int64, isLiked bool, movie *model.Movie) (LikeResult, error) {
	body := map[string]any{"movieId": movieID, "isLiked": isLiked}
	if movie != nil {
		body["movieData"] = movie
	}
	var out LikeResult
	err := c.do(ctx, http.MethodPost, "/api/likes", body, &out)
	return out, err
}

// ClearReaction returns the movie to the neutral state for this session.
func (c *Client) ClearReaction(ctx context.Context, movieID int64) (DeleteResult, error) {
	var out DeleteResult
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/likes/%d", movieID), nil, &out)
	return out, err
}

// Status reads the session's current reaction and the movie statistics.
func (c *Client) Status(ctx context.Context, movieID int64) (StatusResult, error) {
	var out StatusResult
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/likes/%d/status", movieID), nil, &out)
	return out, err
}

// UserStats reads the session's aggregate reaction counts.
func (c *Client) UserStats(ctx context.Context) (model.UserStats, error) {
	var out model.UserStats
	err := c.do(ctx, http.MethodGet, "/api/users/me/stats", nil, &out)
	return out, err
}

// GlobalStats reads the service-wide aggregates.
func (c *Client) GlobalStats(ctx context.Context) (model.GlobalStats, error) {
	var out model.GlobalStats
	err := c.do(ctx, http.MethodGet, "/api/likes/stats/global", nil, &out)
	return out, err
}

// NewSession asks the service for a fresh opaque token and switches the
// client to it.
func (c *Client) NewSession(ctx context.Context) (string, error) {
	var out struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/new-session", nil, &out); err != nil {
		return "", err
	}
	c.sessionToken = out.SessionID
	return out.SessionID, nil
}

// do performs one request and decodes the data field of the success
// envelope into out.  Transport-level failures are wrapped in
// ErrBackendUnavailable; non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", c.sessionToken)

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}
