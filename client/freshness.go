package client

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ensureFresh refreshes the access token ahead of dispatch when it is
// expired or expiring within the configured lead window. Best effort: a
// failed proactive refresh falls through to the normal 401 path.
func (c *Client) ensureFresh(ctx context.Context) {
	creds, err := c.store.Get()
	if err != nil || !creds.HasRefreshToken() {
		return
	}
	if !tokenNeedsRefresh(creds.AccessToken, c.nowTime(), c.refreshLead) {
		return
	}
	if err := c.refresh(ctx); err != nil {
		c.log.Debug().Err(err).Msg("proactive refresh failed")
	}
}

// tokenNeedsRefresh inspects the access token's exp claim without verifying
// the signature; the client holds no verification key and only needs the
// expiry hint. Tokens without an exp claim are never proactively refreshed.
func tokenNeedsRefresh(accessToken string, now time.Time, lead time.Duration) bool {
	if accessToken == "" {
		return true
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now.Add(lead))
}
