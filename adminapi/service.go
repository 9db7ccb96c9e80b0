// Package adminapi provides typed wrappers for the system-admin monitoring
// service: health snapshots, request metrics, hourly rollups, and security
// findings. Every call carries the X-Admin-Key gate header on top of the
// session client's standard headers.
package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-auth-client/client"
	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// HeaderAdminKey gates every admin endpoint; the server compares its SHA-256
// digest against the configured key hash.
const HeaderAdminKey = "X-Admin-Key"

// Doer issues one logical API call and returns a normalized result.
type Doer interface {
	Do(ctx context.Context, req client.Request) *client.Result
}

// Service is the admin monitoring endpoint surface.
type Service struct {
	api      Doer
	adminKey string
}

// NewService initializes the admin service surface.
func NewService(api Doer, adminKey string) (*Service, error) {
	if api == nil {
		return nil, errors.New("[adminapi.NewService] api client is required")
	}
	if adminKey == "" {
		return nil, errors.New("[adminapi.NewService] admin key is required")
	}
	return &Service{api: api, adminKey: adminKey}, nil
}

// LatestHealthSnapshots returns the most recent health probes (1-100).
func (s *Service) LatestHealthSnapshots(ctx context.Context, limit int) (*HealthSnapshotList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return get[HealthSnapshotList](ctx, s, "/health-monitoring/snapshots/latest", query)
}

// HealthHistory returns health probes within [start, end].
func (s *Service) HealthHistory(ctx context.Context, start, end time.Time) (*HealthHistory, error) {
	query := url.Values{}
	query.Set("start", start.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))
	return get[HealthHistory](ctx, s, "/health-monitoring/snapshots/history", query)
}

// HealthAnalysis summarizes uptime and latency over the last N hours.
func (s *Service) HealthAnalysis(ctx context.Context, hours int) (*HealthAnalysis, error) {
	query := url.Values{}
	if hours > 0 {
		query.Set("hours", strconv.Itoa(hours))
	}
	payload, err := get[struct {
		Analysis HealthAnalysis `json:"analysis"`
	}](ctx, s, "/health-monitoring/analysis", query)
	if err != nil {
		return nil, err
	}
	return &payload.Analysis, nil
}

// Metrics lists request observations filtered by the query.
func (s *Service) Metrics(ctx context.Context, q MetricsQuery) (*MetricList, error) {
	query := url.Values{}
	if q.Service != "" {
		query.Set("service", q.Service)
	}
	if q.Start != nil {
		query.Set("start", q.Start.UTC().Format(time.RFC3339))
	}
	if q.End != nil {
		query.Set("end", q.End.UTC().Format(time.RFC3339))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	return get[MetricList](ctx, s, "/monitoring/metrics", query)
}

// HourlyAggregations lists pre-computed hourly rollups for a service.
func (s *Service) HourlyAggregations(ctx context.Context, service string, hours int) (*HourlyAggregationList, error) {
	query := url.Values{}
	if service != "" {
		query.Set("service", service)
	}
	if hours > 0 {
		query.Set("hours", strconv.Itoa(hours))
	}
	return get[HourlyAggregationList](ctx, s, "/monitoring/metrics/hourly", query)
}

// RateLimitedRequests lists recent rate-limited request observations.
func (s *Service) RateLimitedRequests(ctx context.Context, limit int) (*RateLimitedRequestList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return get[RateLimitedRequestList](ctx, s, "/monitoring/metrics/rate-limited", query)
}

// RecentSuspiciousActivities lists recent flagged security findings.
func (s *Service) RecentSuspiciousActivities(ctx context.Context, limit int) (*SuspiciousActivityList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return get[SuspiciousActivityList](ctx, s, "/security/suspicious-activities/recent", query)
}

// RecentRateLimitViolations lists recent rate-limit violations.
func (s *Service) RecentRateLimitViolations(ctx context.Context, limit int) (*RateLimitViolationList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return get[RateLimitViolationList](ctx, s, "/security/rate-limit-violations/recent", query)
}

// TriggerHourlyAggregation manually runs the previous hour's rollup.
func (s *Service) TriggerHourlyAggregation(ctx context.Context) (*AggregationTrigger, error) {
	res := s.api.Do(ctx, s.request(http.MethodPost, "/aggregation/trigger/hourly", nil))
	if !res.Success {
		return nil, resultError(res)
	}
	trigger, err := client.DecodeData[AggregationTrigger](res.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.TriggerHourlyAggregation] decode")
	}
	return &trigger, nil
}

func (s *Service) request(method, path string, query url.Values) client.Request {
	return client.Request{
		Method:  method,
		Path:    path,
		Query:   query,
		Headers: map[string]string{HeaderAdminKey: s.adminKey},
	}
}

func get[T any](ctx context.Context, s *Service, path string, query url.Values) (*T, error) {
	res := s.api.Do(ctx, s.request(http.MethodGet, path, query))
	if !res.Success {
		return nil, resultError(res)
	}
	payload, err := client.DecodeData[T](res.Envelope)
	if err != nil {
		return nil, errors.Wrapf(err, "[adminapi] decode %s", path)
	}
	return &payload, nil
}

func resultError(res *client.Result) error {
	err := res.Err
	if err == nil {
		err = internalerrors.ErrRequestFailed
	}
	return internalerrors.Wrapf(err, "[adminapi] %s", res.Message)
}
