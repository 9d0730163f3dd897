// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/util"
)

// Configuration constants for the parley service API.
const (
	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// userAgent identifies this client to the service.
	userAgent = "parley/0.2.0"
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all service requests.
// No Timeout is set: assistant replies can take arbitrarily long, so every
// request deadline is controlled through the caller's context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// Client-side auth limiters mirroring the service's own limits, so a typo
// loop fails fast locally instead of tripping the server-side limiter.
var (
	loginLimiter    = rate.NewLimiter(rate.Every(6*time.Second), 10)  // 10/min
	registerLimiter = rate.NewLimiter(rate.Every(12*time.Second), 5) // 5/min
)

// Client is the gateway to the parley service. All HTTP traffic in the
// program goes through it.
//
// The client holds the bearer token and attaches it to every request. When
// the service answers 401 the token is discarded (memory and store) and the
// onUnauthorized hook fires once per expiry, so the UI can force a logout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu             sync.Mutex
	token          string
	onUnauthorized func()
}

// NewClient creates a client for the service at baseURL, loading any
// previously stored token from store.
func NewClient(baseURL string, store TokenStore) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		store:      store,
	}
	if store != nil {
		if tok, err := store.Load(); err == nil {
			c.token = tok
		}
	}
	return c
}

// WithHTTPClient sets a custom HTTP client (tests use httptest servers).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// SetUnauthorizedHandler registers the hook fired when the service rejects
// the bearer token. Fired at most once per stored token.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// HasToken reports whether a bearer token is currently held.
func (c *Client) HasToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// SetToken installs a bearer token and persists it.
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.store != nil {
		return c.store.Save(token)
	}
	return nil
}

// ClearToken drops the bearer token from memory and from the store.
func (c *Client) ClearToken() error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ===== REQUEST PLUMBING =====

// setHeaders sets the common headers for service requests.
func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// currentToken snapshots the token under the lock.
func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// handleUnauthorized discards the token and fires the hook. Idempotent: a
// second 401 from an in-flight request finds the token already gone and
// does not fire the hook again.
func (c *Client) handleUnauthorized() {
	c.mu.Lock()
	hadToken := c.token != ""
	c.token = ""
	fn := c.onUnauthorized
	c.mu.Unlock()

	if !hadToken {
		return
	}
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			log.Warn("failed to clear stored token", "error", err)
		}
	}
	if fn != nil {
		fn()
	}
}

// readResponse reads a response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// do performs a request against the service and returns the raw body of a
// 2xx response. Non-2xx responses become *APIError; a 401 additionally
// invalidates the session first.
//
// SECURITY: Logs method/path/status/duration only. Never logs headers
// (carry the bearer token) or bodies (carry credentials and messages).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req, c.currentToken())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log.Debug("api request", "method", method, "path", path)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	// SECURITY: Clear Authorization header immediately after the request so
	// a later dump of the request can never leak the token.
	req.Header.Del("Authorization")

	if err != nil {
		log.Debug("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("api response", "method", method, "path", path,
		"status", resp.StatusCode, "duration", duration)

	respBody, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, parseErrorDetail(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// doJSON sends a JSON request body (nil for none) and decodes a JSON
// response into out (nil to discard).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ===== AUTH ENDPOINTS =====

// loginRequest is the credential payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// registerRequest is the account creation payload.
type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userEnvelope wraps a single user.
type userEnvelope struct {
	User model.User `json:"user"`
}

// Login exchanges credentials for a bearer token and persists it. On
// success subsequent requests carry the token automatically.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if !loginLimiter.Allow() {
		return ErrRateLimited
	}

	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login",
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return &APIError{Status: 200, Detail: genericDetail}
	}
	return c.SetToken(resp.AccessToken)
}

// Register creates an account. The service issues a bearer token on
// registration exactly as it does on login, and the token is persisted the
// same way.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	if !registerLimiter.Allow() {
		return ErrRateLimited
	}

	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register",
		registerRequest{FullName: fullName, Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return &APIError{Status: 200, Detail: genericDetail}
	}
	return c.SetToken(resp.AccessToken)
}

// Me fetches the identity behind the held token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	if !c.HasToken() {
		return nil, ErrNoToken
	}
	var env userEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// ===== PROJECT ENDPOINTS =====

// projectPayload is the create/update request body.
type projectPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// projectsEnvelope wraps a project list.
type projectsEnvelope struct {
	Projects []model.Project `json:"projects"`
	Total    int             `json:"total"`
}

// projectEnvelope wraps a single project.
type projectEnvelope struct {
	Project model.Project `json:"project"`
}

// ListProjects fetches all projects owned by the current user.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var env projectsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/projects/", nil, &env); err != nil {
		return nil, err
	}
	return env.Projects, nil
}

// CreateProject creates a project and returns the service's record of it.
func (c *Client) CreateProject(ctx context.Context, name, description, systemPrompt string) (*model.Project, error) {
	var env projectEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/projects/",
		projectPayload{Name: name, Description: description, SystemPrompt: systemPrompt}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Project, nil
}

// UpdateProject replaces a project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id int64, name, description, systemPrompt string) (*model.Project, error) {
	var env projectEnvelope
	err := c.doJSON(ctx, http.MethodPut, "/projects/"+util.Int64ToString(id),
		projectPayload{Name: name, Description: description, SystemPrompt: systemPrompt}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Project, nil
}

// DeleteProject removes a project and everything under it.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+util.Int64ToString(id), nil, nil)
}

// ===== CHAT ENDPOINTS =====

// chatRequest is the outbound message payload.
type chatRequest struct {
	Message string `json:"message"`
}

// ChatExchange is one completed round trip: the user's message as the
// service recorded it, and the assistant's reply.
type ChatExchange struct {
	UserMessage      model.Message `json:"user_message"`
	AssistantMessage model.Message `json:"assistant_message"`
}

// historyEnvelope wraps a message history page.
type historyEnvelope struct {
	Messages []model.Message `json:"messages"`
	Total    int             `json:"total"`
}

// SendMessage submits a chat message to a project and blocks until the
// assistant's reply arrives. There is no client-side deadline here: the
// caller's context is the only way this returns early.
func (c *Client) SendMessage(ctx context.Context, projectID int64, message string) (*ChatExchange, error) {
	var exchange ChatExchange
	err := c.doJSON(ctx, http.MethodPost, "/chat/"+util.Int64ToString(projectID),
		chatRequest{Message: message}, &exchange)
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

// History fetches the stored conversation for a project, oldest first.
func (c *Client) History(ctx context.Context, projectID int64) ([]model.Message, error) {
	var env historyEnvelope
	err := c.doJSON(ctx, http.MethodGet, "/chat/"+util.Int64ToString(projectID)+"/history", nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Messages, nil
}

// ===== FILE ENDPOINTS =====

// filesEnvelope wraps a file list.
type filesEnvelope struct {
	Files []model.FileUpload `json:"files"`
	Total int                `json:"total"`
}

// ListFiles fetches the files attached to a project.
func (c *Client) ListFiles(ctx context.Context, projectID int64) ([]model.FileUpload, error) {
	var env filesEnvelope
	err := c.doJSON(ctx, http.MethodGet, "/files/"+util.Int64ToString(projectID), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Files, nil
}
