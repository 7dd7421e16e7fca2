package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/client/models"
	"github.com/AnandRajBind/Task-Management/internal/client/session"
	"github.com/AnandRajBind/Task-Management/internal/common"
)

// envelope mirrors the response wrapper the server emits for every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type authPayload struct {
	User   *models.User `json:"user"`
	Tokens tokenPair    `json:"tokens"`
}

type tokensPayload struct {
	Tokens tokenPair `json:"tokens"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   *session.Store

	// onSessionExpired fires when the refresh token is spent or rejected
	// and the local session has been wiped.
	onSessionExpired func()
}

func NewHTTPClient(baseURL string, store *session.Store) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 12 * time.Second},
		store:   store,
	}
}

// OnSessionExpired registers a hook invoked after the session is cleared
// because a silent refresh failed.
func (c *HTTPClient) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// do performs a single HTTP round trip and decodes the response envelope.
// accessToken, when non-empty, is attached as a bearer credential.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, accessToken string) (int, *envelope, error) {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("malformed response: %w", err)
	}
	return resp.StatusCode, &env, nil
}

// doAuthed performs an authenticated request. On a 401 it refreshes the
// token pair and replays the request, at most once per call; the refresh
// endpoint itself never goes through this path.
func (c *HTTPClient) doAuthed(ctx context.Context, method, path string, body, out any) error {
	retried := false
	for {
		accessToken, err := c.store.AccessToken(ctx)
		if err != nil {
			return err
		}

		status, env, err := c.do(ctx, method, path, body, accessToken)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && !retried {
			retried = true
			if err := c.refreshSession(ctx, unwrap(status, env, nil)); err != nil {
				return err
			}
			continue
		}

		return unwrap(status, env, out)
	}
}

// refreshSession spends the stored refresh token for a new pair. cause is
// the authorization failure that triggered the refresh; when there is no
// token to spend it stays the surfaced error. A rejected refresh wipes the
// local session and surfaces the server's rejection instead; a transport
// failure leaves the session intact so the user can retry when the server
// is reachable again.
func (c *HTTPClient) refreshSession(ctx context.Context, cause error) error {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if refreshToken == "" {
		return c.expireSession(ctx, cause)
	}

	status, env, err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refreshToken}, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.expireSession(ctx, unwrap(status, env, nil))
	}

	var res tokensPayload
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return fmt.Errorf("malformed refresh response: %w", err)
	}
	return c.store.SaveTokens(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
}

// expireSession wipes the local session and fires the expiry hook. The
// returned error keeps cause in its chain so callers can still match the
// underlying failure with errors.Is.
func (c *HTTPClient) expireSession(ctx context.Context, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

// unwrap maps the final response to (out, error).
func unwrap(status int, env *envelope, out any) error {
	if status >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		switch status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		default:
			if msg == "" {
				msg = http.StatusText(status)
			}
			return errors.New(msg)
		}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}

	status, env, err := c.do(ctx, http.MethodPost, "/api/auth/register", body, "")
	if err != nil {
		return nil, err
	}

	var res authPayload
	if err := unwrap(status, env, &res); err != nil {
		return nil, err
	}

	if err := c.store.Save(ctx, res.User, res.Tokens.AccessToken, res.Tokens.RefreshToken); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}

	status, env, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "")
	if err != nil {
		return nil, err
	}

	var res authPayload
	if err := unwrap(status, env, &res); err != nil {
		return nil, err
	}

	if err := c.store.Save(ctx, res.User, res.Tokens.AccessToken, res.Tokens.RefreshToken); err != nil {
		return nil, err
	}
	return res.User, nil
}

// Logout revokes the stored refresh token server-side and wipes the local
// session. A server that no longer knows the token is fine: the endpoint
// always succeeds, and the local state is cleared regardless.
func (c *HTTPClient) Logout(ctx context.Context) error {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if refreshToken != "" {
		if _, _, err := c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{"refreshToken": refreshToken}, ""); err != nil {
			return err
		}
	}
	return c.store.Clear(ctx)
}

func (c *HTTPClient) ListTasks(ctx context.Context, query ListQuery) (*models.TaskList, error) {
	q := url.Values{}
	if query.Status != "" {
		q.Set("status", query.Status)
	}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}

	path := "/api/tasks"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list models.TaskList
	if err := c.doAuthed(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, title, description string) (*models.Task, error) {
	body := map[string]string{"title": title, "description": description}

	var task models.Task
	if err := c.doAuthed(ctx, http.MethodPost, "/api/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := c.doAuthed(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.doAuthed(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := c.doAuthed(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.doAuthed(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// Health probes the server's liveness endpoint.
func (c *HTTPClient) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/api/health", nil, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}
