package adminapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/adminapi"
	"github.com/jrsteele09/go-auth-client/client"
	"github.com/jrsteele09/go-auth-client/credentials/repofake"
)

const adminKey = "test-admin-key"

func newService(t *testing.T, baseURL string) *adminapi.Service {
	t.Helper()
	api, err := client.New(baseURL, repofake.NewFakeCredentialsStore())
	require.NoError(t, err)
	svc, err := adminapi.NewService(api, adminKey)
	require.NoError(t, err)
	return svc
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewServiceValidation(t *testing.T) {
	api, err := client.New("http://localhost", repofake.NewFakeCredentialsStore())
	require.NoError(t, err)

	_, err = adminapi.NewService(nil, adminKey)
	require.Error(t, err)

	_, err = adminapi.NewService(api, "")
	require.Error(t, err)
}

func TestLatestHealthSnapshotsCarriesAdminKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health-monitoring/snapshots/latest", r.URL.Path)
		require.Equal(t, adminKey, r.Header.Get(adminapi.HeaderAdminKey))
		require.Equal(t, "5", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data: json.RawMessage(`{
				"count": 1,
				"snapshots": [{
					"id": "hs-1",
					"timestamp": "2025-01-02T03:04:05Z",
					"db_status": "healthy",
					"db_latency_ms": 1.5,
					"redis_status": "healthy",
					"redis_latency_ms": 0.4,
					"crypto_status": "healthy"
				}]
			}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	list, err := svc.LatestHealthSnapshots(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Len(t, list.Snapshots, 1)
	require.Equal(t, "healthy", list.Snapshots[0].DBStatus)
	require.NotNil(t, list.Snapshots[0].DBLatencyMs)
	require.InDelta(t, 1.5, *list.Snapshots[0].DBLatencyMs, 0.001)
}

func TestHealthAnalysisUnwrapsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health-monitoring/analysis", r.URL.Path)
		require.Equal(t, "24", r.URL.Query().Get("hours"))

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data: json.RawMessage(`{
				"analysis": {
					"total_snapshots": 288,
					"db_uptime_percentage": 99.5,
					"redis_uptime_percentage": 100,
					"avg_db_latency_ms": 2.1
				}
			}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	analysis, err := svc.HealthAnalysis(context.Background(), 24)
	require.NoError(t, err)
	require.Equal(t, 288, analysis.TotalSnapshots)
	require.InDelta(t, 99.5, analysis.DBUptimePercentage, 0.001)
}

func TestMetricsQueryParameters(t *testing.T) {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/monitoring/metrics", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "kauthapp", q.Get("service"))
		require.Equal(t, "2025-01-02T00:00:00Z", q.Get("start"))
		require.Equal(t, "2025-01-02T12:00:00Z", q.Get("end"))
		require.Equal(t, "50", q.Get("limit"))

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data: json.RawMessage(`{
				"service": "kauthapp",
				"count": 1,
				"metrics": [{
					"id": "m-1",
					"timestamp": "2025-01-02T03:04:05Z",
					"service": "kauthapp",
					"remote_ip": "203.0.113.9",
					"method": "POST",
					"url": "/signin",
					"status": 200,
					"rate_limited": false,
					"backend_latency_ms": 12.5
				}]
			}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	list, err := svc.Metrics(context.Background(), adminapi.MetricsQuery{
		Service: "kauthapp",
		Start:   &start,
		End:     &end,
		Limit:   50,
	})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Equal(t, 200, list.Metrics[0].Status)
	require.Nil(t, list.Metrics[0].UserID)
}

func TestHourlyAggregationsDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/monitoring/metrics/hourly", r.URL.Path)
		require.Equal(t, "kauthapp", r.URL.Query().Get("service"))

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data: json.RawMessage(`{
				"service": "kauthapp",
				"count": 1,
				"aggregations": [{
					"id": "agg-1",
					"hour_start": "2025-01-02T03:00:00Z",
					"service": "kauthapp",
					"total_requests": 120,
					"successful_requests": 115,
					"client_errors": 4,
					"server_errors": 1,
					"rate_limited_requests": 2,
					"p95_backend_latency_ms": 45.2,
					"unique_ips": 30
				}]
			}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	list, err := svc.HourlyAggregations(context.Background(), "kauthapp", 24)
	require.NoError(t, err)
	require.Equal(t, 120, list.Aggregations[0].TotalRequests)
	require.NotNil(t, list.Aggregations[0].P95BackendLatencyMs)
}

func TestRecentSuspiciousActivitiesDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/security/suspicious-activities/recent", r.URL.Path)

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data: json.RawMessage(`{
				"count": 1,
				"activities": [{
					"id": "sa-1",
					"timestamp": "2025-01-02T03:04:05Z",
					"remote_ip": "203.0.113.9",
					"activity_type": "repeated_failed_signin",
					"severity": "high",
					"details": {"attempts": 12}
				}]
			}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	list, err := svc.RecentSuspiciousActivities(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "repeated_failed_signin", list.Activities[0].ActivityType)
	require.Equal(t, "high", list.Activities[0].Severity)
}

func TestTriggerHourlyAggregation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/aggregation/trigger/hourly", r.URL.Path)
		require.Equal(t, adminKey, r.Header.Get(adminapi.HeaderAdminKey))

		writeJSON(t, w, http.StatusOK, client.Envelope{
			Success: true,
			Data:    json.RawMessage(`{"status": "completed", "hour": "2025-01-02T03:00:00Z", "services_aggregated": 2, "details": {"kauthapp": 120, "ksysadmin": 45}}`),
		})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	trigger, err := svc.TriggerHourlyAggregation(context.Background())
	require.NoError(t, err)
	require.Equal(t, "completed", trigger.Status)
	require.Equal(t, 2, trigger.ServicesAggregated)
	require.Equal(t, 120, trigger.Details["kauthapp"])
}

func TestAdminRequestRejectedWithoutValidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, client.Envelope{Success: false, Message: "invalid admin key"})
	}))
	defer server.Close()

	svc := newService(t, server.URL)
	_, err := svc.LatestHealthSnapshots(context.Background(), 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid admin key")
}
