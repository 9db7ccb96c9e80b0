package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Headers attached to every outbound request, including the internally
// generated refresh call.
const (
	HeaderRequestID        = "X-Request-Id"
	HeaderRequestTimestamp = "X-Request-Timestamp"
	HeaderClientVersion    = "X-Client-Version"
	HeaderClientPlatform   = "X-Client-Platform"
)

// Request is an immutable descriptor of one logical API call. Retry state is
// never stored on it; the client passes the attempt count through the call
// chain instead.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// buildRequest constructs the wire request: JSON body, trace metadata,
// client identity headers, and the bearer credential when requested and
// present. Every call generates a fresh request id and timestamp.
func (c *Client) buildRequest(ctx context.Context, req Request, withBearer bool) (*http.Request, error) {
	target := strings.TrimSuffix(c.baseURL, "/") + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.buildRequest] Marshal body")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.buildRequest] NewRequestWithContext")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderClientVersion, c.clientVersion)
	httpReq.Header.Set(HeaderClientPlatform, c.clientPlatform)
	httpReq.Header.Set(HeaderRequestID, uuid.New().String())
	httpReq.Header.Set(HeaderRequestTimestamp, c.nowTime().UTC().Format(time.RFC3339))

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if withBearer {
		if creds, err := c.store.Get(); err == nil && creds.HasAccessToken() {
			httpReq.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
	}

	return httpReq, nil
}
