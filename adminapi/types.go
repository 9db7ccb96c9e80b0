package adminapi

import "time"

// HealthSnapshot is one recorded health probe of the platform backends.
type HealthSnapshot struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	DBStatus       string    `json:"db_status"`
	DBLatencyMs    *float64  `json:"db_latency_ms"`
	RedisStatus    string    `json:"redis_status"`
	RedisLatencyMs *float64  `json:"redis_latency_ms"`
	CryptoStatus   string    `json:"crypto_status"`
}

// HealthSnapshotList is the latest-snapshots payload.
type HealthSnapshotList struct {
	Count     int              `json:"count"`
	Snapshots []HealthSnapshot `json:"snapshots"`
}

// HealthHistory is the time-ranged snapshot payload.
type HealthHistory struct {
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Count     int              `json:"count"`
	Snapshots []HealthSnapshot `json:"snapshots"`
}

// HealthAnalysis summarizes uptime and latency over a window.
type HealthAnalysis struct {
	TotalSnapshots        int     `json:"total_snapshots"`
	DBUptimePercentage    float64 `json:"db_uptime_percentage"`
	RedisUptimePercentage float64 `json:"redis_uptime_percentage"`
	CryptoUptimePct       float64 `json:"crypto_uptime_percentage"`
	AvgDBLatencyMs        float64 `json:"avg_db_latency_ms"`
	AvgRedisLatencyMs     float64 `json:"avg_redis_latency_ms"`
	MaxDBLatencyMs        float64 `json:"max_db_latency_ms"`
	MaxRedisLatencyMs     float64 `json:"max_redis_latency_ms"`
}

// MetricSnapshot is one recorded request observation.
type MetricSnapshot struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Service          string    `json:"service"`
	RemoteIP         string    `json:"remote_ip"`
	RequestID        string    `json:"request_id"`
	Method           string    `json:"method"`
	URL              string    `json:"url"`
	Status           int       `json:"status"`
	RateLimited      bool      `json:"rate_limited"`
	NginxLatencyMs   *float64  `json:"nginx_latency_ms"`
	BackendLatencyMs *float64  `json:"backend_latency_ms"`
	UserID           *string   `json:"user_id"`
}

// MetricList is the metrics query payload.
type MetricList struct {
	Service string           `json:"service"`
	Count   int              `json:"count"`
	Metrics []MetricSnapshot `json:"metrics"`
}

// HourlyAggregation is one pre-computed hourly rollup for a service.
type HourlyAggregation struct {
	ID                  string    `json:"id"`
	HourStart           time.Time `json:"hour_start"`
	Service             string    `json:"service"`
	TotalRequests       int       `json:"total_requests"`
	SuccessfulRequests  int       `json:"successful_requests"`
	ClientErrors        int       `json:"client_errors"`
	ServerErrors        int       `json:"server_errors"`
	RateLimitedRequests int       `json:"rate_limited_requests"`
	AvgNginxLatencyMs   *float64  `json:"avg_nginx_latency_ms"`
	AvgBackendLatencyMs *float64  `json:"avg_backend_latency_ms"`
	P95NginxLatencyMs   *float64  `json:"p95_nginx_latency_ms"`
	P95BackendLatencyMs *float64  `json:"p95_backend_latency_ms"`
	UniqueIPs           int       `json:"unique_ips"`
}

// HourlyAggregationList is the hourly rollups payload.
type HourlyAggregationList struct {
	Service      string              `json:"service"`
	Count        int                 `json:"count"`
	Aggregations []HourlyAggregation `json:"aggregations"`
}

// RateLimitedRequest is one rate-limited request observation.
type RateLimitedRequest struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	RemoteIP  string    `json:"remote_ip"`
	URL       string    `json:"url"`
	UserID    *string   `json:"user_id"`
}

// RateLimitedRequestList is the rate-limited requests payload.
type RateLimitedRequestList struct {
	Count               int                  `json:"count"`
	RateLimitedRequests []RateLimitedRequest `json:"rate_limited_requests"`
}

// SuspiciousActivity is one flagged security finding.
type SuspiciousActivity struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	RemoteIP     string         `json:"remote_ip"`
	ActivityType string         `json:"activity_type"`
	Severity     string         `json:"severity"`
	Details      map[string]any `json:"details"`
}

// SuspiciousActivityList is the recent-activities payload.
type SuspiciousActivityList struct {
	Count      int                  `json:"count"`
	Activities []SuspiciousActivity `json:"activities"`
}

// RateLimitViolation is one recorded rate-limit violation.
type RateLimitViolation struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	RemoteIP       string    `json:"remote_ip"`
	ViolationCount int       `json:"violation_count"`
	UserID         *string   `json:"user_id"`
}

// RateLimitViolationList is the recent-violations payload.
type RateLimitViolationList struct {
	Count      int                  `json:"count"`
	Violations []RateLimitViolation `json:"violations"`
}

// AggregationTrigger is the manual hourly-aggregation trigger payload.
type AggregationTrigger struct {
	Status             string         `json:"status"`
	Hour               string         `json:"hour"`
	ServicesAggregated int            `json:"services_aggregated"`
	Details            map[string]int `json:"details"`
}

// MetricsQuery filters the metrics listing.
type MetricsQuery struct {
	Service string
	Start   *time.Time
	End     *time.Time
	Limit   int
}
