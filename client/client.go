// Package client implements the authenticated session client: it wraps an
// HTTP transport so callers issue logical API calls without managing bearer
// tokens, trace headers, or refresh-on-expiry. A 401 on a request that has
// not been retried triggers a single-flight refresh of the access token and
// exactly one retry of the original request.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-auth-client/credentials"
	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultRefreshPath    = "/refresh"
	defaultClientVersion  = "1.0.0"
	defaultClientPlatform = "go"
)

// SessionExpiredFunc is invoked after the client clears stored credentials
// because the session could not be recovered. The UI layer decides what to
// do with it (typically navigate to sign-in); the client never redirects.
type SessionExpiredFunc func()

// Client is the authenticated session client.
type Client struct {
	baseURL        string
	store          credentials.Store
	httpClient     *http.Client
	log            zerolog.Logger
	clientVersion  string
	clientPlatform string
	refreshPath    string

	// strictRefresh restores the original clear-on-any-refresh-failure
	// behavior. The default treats a transport error during refresh as
	// transient and keeps credentials.
	strictRefresh bool

	// refreshLead enables proactive refresh: when > 0, the stored access
	// token's exp claim is inspected before dispatch and the token refreshed
	// if it expires within the window.
	refreshLead time.Duration

	onSessionExpired SessionExpiredFunc
	refreshGroup     singleflight.Group
	nowTime          func() time.Time
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides the fixed per-request timeout (default 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the client logger (default: no-op).
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClientIdentity sets the fixed X-Client-Version / X-Client-Platform
// header values.
func WithClientIdentity(version, platform string) Option {
	return func(c *Client) {
		c.clientVersion = version
		c.clientPlatform = platform
	}
}

// WithRefreshPath overrides the refresh endpoint path (default "/refresh").
func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// WithStrictRefreshPolicy clears stored credentials on any refresh failure,
// including transport errors, matching the original client behavior.
func WithStrictRefreshPolicy() Option {
	return func(c *Client) { c.strictRefresh = true }
}

// WithProactiveRefresh refreshes the access token before dispatch when its
// exp claim falls within the lead window.
func WithProactiveRefresh(lead time.Duration) Option {
	return func(c *Client) { c.refreshLead = lead }
}

// WithSessionExpiredFunc registers the session-expired callback.
func WithSessionExpiredFunc(fn SessionExpiredFunc) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) { c.nowTime = nowFunc }
}

// New initializes a session client for the service at baseURL. The
// credential store is required; it is read before every request and written
// only after a successful refresh or sign-in.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[client.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[client.New] credential store is required")
	}

	c := &Client{
		baseURL:        baseURL,
		store:          store,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		log:            zerolog.Nop(),
		clientVersion:  defaultClientVersion,
		clientPlatform: defaultClientPlatform,
		refreshPath:    defaultRefreshPath,
		nowTime:        time.Now,
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Do performs one logical API call and always returns a normalized result:
// transport failures, malformed bodies, and refresh outcomes are all coerced
// into the envelope, never surfaced as raw transport errors.
func (c *Client) Do(ctx context.Context, req Request) *Result {
	if c.refreshLead > 0 {
		c.ensureFresh(ctx)
	}
	return c.dispatch(ctx, req, 0)
}

// dispatch sends the request. attempt counts prior auth-failure retries for
// this logical call; at most one refresh-and-retry cycle runs per call.
func (c *Client) dispatch(ctx context.Context, req Request, attempt int) *Result {
	httpReq, err := c.buildRequest(ctx, req, true)
	if err != nil {
		c.log.Error().Err(err).Str("path", req.Path).Msg("request construction failed")
		return &Result{
			Envelope: Envelope{Success: false, Message: "request could not be constructed"},
			Err:      internalerrors.Wrapf(internalerrors.ErrUnexpected, "[Client.dispatch] build"),
		}
	}

	requestID := httpReq.Header.Get(HeaderRequestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug().Err(err).Str("request_id", requestID).Str("path", req.Path).Msg("transport failure")
		return networkFailure()
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return networkFailure()
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Msg("request completed")

	if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
		if err := c.refresh(ctx); err != nil {
			return c.refreshFailure(err)
		}
		// New access token persisted; re-dispatch the original exactly once.
		return c.dispatch(ctx, req, attempt+1)
	}

	return normalize(resp.StatusCode, body)
}

// refreshFailure maps a failed refresh into the terminal result. The refresh
// error, not the original 401, is what reaches the caller.
func (c *Client) refreshFailure(err error) *Result {
	definitive := internalerrors.Is(err, internalerrors.ErrRefreshRejected) ||
		internalerrors.Is(err, internalerrors.ErrNoRefreshToken) ||
		internalerrors.Is(err, internalerrors.ErrNoCredentials)
	transient := internalerrors.Is(err, internalerrors.ErrNetwork)

	if definitive || c.strictRefresh {
		c.expireSession()
		return &Result{
			Envelope:   Envelope{Success: false, Message: "session expired, please sign in again"},
			StatusCode: http.StatusUnauthorized,
			Err:        internalerrors.Wrapf(internalerrors.ErrSessionExpired, "[Client.refreshFailure] %v", err),
		}
	}
	if transient {
		return networkFailure()
	}
	c.log.Error().Err(err).Msg("refresh failed")
	return &Result{
		Envelope: Envelope{Success: false, Message: "could not refresh session, please try again"},
		Err:      internalerrors.Wrapf(internalerrors.ErrUnexpected, "[Client.refreshFailure] %v", err),
	}
}

// expireSession clears stored credentials and signals the observer. It never
// navigates; that is the caller's concern.
func (c *Client) expireSession() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear credentials")
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// normalize coerces any terminal response into the envelope contract.
func normalize(status int, body []byte) *Result {
	env, isEnvelope := parseEnvelope(body)

	if status >= 200 && status < 300 {
		if isEnvelope {
			res := &Result{Envelope: env, StatusCode: status}
			if !env.Success {
				res.Err = internalerrors.ErrRequestFailed
			}
			return res
		}
		// Bare JSON payload (e.g. health probes); wrap it so callers still
		// see the envelope shape.
		if len(body) > 0 && json.Valid(body) {
			return &Result{
				Envelope:   Envelope{Success: true, Data: append([]byte(nil), body...)},
				StatusCode: status,
			}
		}
		return &Result{
			Envelope:   Envelope{Success: false, Message: "malformed response body"},
			StatusCode: status,
			Err:        internalerrors.ErrUnexpected,
		}
	}

	if isEnvelope {
		env.Success = false
		if env.Message == "" {
			env.Message = statusMessage(status)
		}
		return &Result{Envelope: env, StatusCode: status, Err: classifyStatus(status, env)}
	}
	return &Result{
		Envelope:   Envelope{Success: false, Message: statusMessage(status)},
		StatusCode: status,
		Err:        classifyStatus(status, Envelope{}),
	}
}

func classifyStatus(status int, env Envelope) error {
	switch {
	case status == http.StatusUnauthorized:
		return internalerrors.ErrUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || len(env.Errors) > 0:
		return internalerrors.ErrValidation
	default:
		return internalerrors.ErrRequestFailed
	}
}

func statusMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

func networkFailure() *Result {
	return &Result{
		Envelope: Envelope{Success: false, Message: "network error, please check your connection"},
		Err:      internalerrors.ErrNetwork,
	}
}
