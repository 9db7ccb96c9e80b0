package credentials

// Credentials is the session credential pair produced by a successful
// sign-in or OTP verification. The access token is short-lived and
// authorizes API calls; the refresh token is used solely to mint a new
// access token.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HasAccessToken reports whether an access token is present.
func (c *Credentials) HasAccessToken() bool {
	return c != nil && c.AccessToken != ""
}

// HasRefreshToken reports whether a refresh token is present.
func (c *Credentials) HasRefreshToken() bool {
	return c != nil && c.RefreshToken != ""
}
