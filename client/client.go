// Package client is a Go SDK for the blog API. It mirrors the fluent
// query-builder surface the web UI uses: a chain built from
// From(table).Select().Eq().Order().Range()... accumulates state and compiles
// into exactly one HTTP request when executed. The backend does not speak a
// uniform query language, so each table carries its own translation rules;
// see resources.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// ErrNoRows is returned by Query.Single when the result set is empty.
var ErrNoRows = errors.New("client: no rows in result")

// APIError carries the backend's {"error": msg} body and HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the blog backend. Session cookies issued by SignIn are
// kept in the client's cookie jar, so authenticated calls work the same way
// the browser does.
type Client struct {
	baseURL   string
	http      *http.Client
	token     string
	resources map[string]resource

	// Auth wraps the signin/session/signout endpoints.
	Auth *AuthAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The replacement should
// carry a cookie jar if cookie-based sessions are wanted.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends the given token as a Bearer Authorization header instead
// of relying on the session cookie.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("client: baseURL is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resources = map[string]resource{
		"posts":           postsResource{},
		"categories":      categoriesResource{},
		"tags":            tagsResource{},
		"post_categories": postCategoriesResource{},
		"post_tags":       postTagsResource{},
		"comments":        commentsResource{},
		"settings":        settingsResource{},
		"post_views":      postViewsResource{},
	}
	c.Auth = &AuthAPI{c: c}
	return c, nil
}

// From starts a lazily-executed query chain against a table.
func (c *Client) From(table string) *Query {
	q := &Query{c: c, table: table}
	if _, ok := c.resources[table]; !ok {
		q.err = fmt.Errorf("client: unknown table %q", table)
	}
	return q
}

// Storage returns the media storage sub-API.
func (c *Client) Storage() *StorageAPI {
	return &StorageAPI{c: c}
}

// RPC invokes a named server-side procedure. The only procedure the backend
// exposes is "increment_post_view" with an integer "post_id_to_increment".
func (c *Client) RPC(ctx context.Context, name string, params map[string]interface{}) error {
	if name != "increment_post_view" {
		return fmt.Errorf("client: unknown rpc %q", name)
	}
	id, ok := params["post_id_to_increment"]
	if !ok {
		return errors.New("client: post_id_to_increment is required")
	}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%v/increment_view", id), nil, nil)
	return err
}

// do issues one request and returns the raw response body. Error statuses
// are decoded into *APIError; transport failures pass through unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// doMultipart posts a multipart form and returns the raw response body.
func (c *Client) doMultipart(ctx context.Context, path, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeAPIError(status int, raw []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &APIError{StatusCode: status, Message: envelope.Error}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
}

// dataField extracts the "data" payload from a response envelope.
func dataField(raw json.RawMessage) (json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return json.RawMessage("null"), nil
	}
	return envelope.Data, nil
}
