// Package teamclient talks to the team-management roster API.
package teamclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/utils"
	"go.uber.org/zap"
)

const membersPath = "/team-management/members"

// APIError is returned when the server answers success:false or a non-2xx
// status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("team api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("team api: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends a bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client rooted at apiBaseURL, e.g. http://localhost:3002/api/v1.
func New(apiBaseURL string, opts ...Option) (*Client, error) {
	u, err := url.ParseRequestURI(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListMembers returns the roster, optionally narrowed to one status.
func (c *Client) ListMembers(ctx context.Context, status string) ([]models.TeamMember, error) {
	path := membersPath
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	var members []models.TeamMember
	if err := c.do(ctx, http.MethodGet, path, nil, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	return members, nil
}

func (c *Client) GetMember(ctx context.Context, id string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := c.do(ctx, http.MethodGet, memberPath(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) CreateMember(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	var created models.TeamMember
	if err := c.do(ctx, http.MethodPost, membersPath, m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMember(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	if m.ID.IsZero() {
		return nil, errors.New("team member id is required")
	}
	var updated models.TeamMember
	if err := c.do(ctx, http.MethodPut, memberPath(m.ID.Hex()), m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, memberPath(id), nil, nil)
}

func (c *Client) Archive(ctx context.Context, id string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := c.do(ctx, http.MethodPatch, memberPath(id)+"/archive", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Reactivate(ctx context.Context, id string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := c.do(ctx, http.MethodPatch, memberPath(id)+"/reactivate", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func memberPath(id string) string {
	return membersPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("team api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env utils.Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
