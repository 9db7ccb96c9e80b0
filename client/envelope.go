package client

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the normalized terminal outcome of one logical API call.
// Every endpoint on the platform responds in this shape; transport-level
// failures are coerced into it so callers see exactly one contract.
type Envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Result is an Envelope plus local classification. StatusCode is zero when
// the request never reached the server. Err carries a sentinel from
// internal/errors for errors.Is checks; it is nil on success.
type Result struct {
	Envelope
	StatusCode int
	Err        error
}

// DecodeData unmarshals an envelope's data payload into T.
func DecodeData[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, errors.New("[DecodeData] envelope has no data")
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, errors.Wrap(err, "[DecodeData] Unmarshal")
	}
	return out, nil
}

// parseEnvelope decodes body as an envelope. A JSON body without a "success"
// field is not an envelope (some endpoints, like health probes, respond with
// bare payloads).
func parseEnvelope(body []byte) (Envelope, bool) {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Success == nil {
		return Envelope{}, false
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, false
	}
	return env, true
}
