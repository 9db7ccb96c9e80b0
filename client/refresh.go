package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-auth-client/credentials"
	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshData is the refresh endpoint's success payload. Only the access
// token rotates; the refresh token is unchanged.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// refresh mints a new access token through the refresh endpoint. Concurrent
// callers share one in-flight attempt: requests that hit 401 while a refresh
// is already running await its result instead of re-triggering it.
func (c *Client) refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, c.doRefresh(ctx)
	})
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	creds, err := c.store.Get()
	if err != nil {
		if internalerrors.Is(err, credentials.ErrNoCredentials) {
			return internalerrors.ErrNoRefreshToken
		}
		return internalerrors.Wrapf(internalerrors.ErrCredentialStore, "[Client.doRefresh] store.Get: %v", err)
	}
	if !creds.HasRefreshToken() {
		return internalerrors.ErrNoRefreshToken
	}

	// The refresh call is unauthenticated and carries its own fresh trace id.
	httpReq, err := c.buildRequest(ctx, Request{
		Method: http.MethodPost,
		Path:   c.refreshPath,
		Body:   refreshRequest{RefreshToken: creds.RefreshToken},
	}, false)
	if err != nil {
		return internalerrors.Wrapf(internalerrors.ErrUnexpected, "[Client.doRefresh] build: %v", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return internalerrors.Wrapf(internalerrors.ErrNetwork, "[Client.doRefresh] %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return internalerrors.Wrapf(internalerrors.ErrNetwork, "[Client.doRefresh] read body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return internalerrors.Wrapf(internalerrors.ErrRefreshRejected, "[Client.doRefresh] status %d", resp.StatusCode)
	}

	rd, err := parseRefreshData(body)
	if err != nil {
		return internalerrors.Wrapf(internalerrors.ErrUnexpected, "[Client.doRefresh] %v", err)
	}

	// Persist before any retry is dispatched.
	creds.AccessToken = rd.AccessToken
	if err := c.store.Set(*creds); err != nil {
		return internalerrors.Wrapf(internalerrors.ErrCredentialStore, "[Client.doRefresh] store.Set: %v", err)
	}

	c.log.Debug().Int("expires_in", rd.ExpiresIn).Msg("access token refreshed")
	return nil
}

// parseRefreshData accepts both the enveloped response the auth service
// emits and a bare token payload.
func parseRefreshData(body []byte) (*RefreshData, error) {
	raw := body
	if env, ok := parseEnvelope(body); ok {
		if !env.Success {
			return nil, errors.New("refresh envelope not successful")
		}
		raw = env.Data
	}

	var rd RefreshData
	if err := json.Unmarshal(raw, &rd); err != nil {
		return nil, errors.Wrap(err, "unmarshal refresh data")
	}
	if rd.AccessToken == "" {
		return nil, errors.New("refresh response missing access token")
	}
	return &rd, nil
}
