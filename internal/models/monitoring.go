package models

import "time"

// MonitoringResponse respuesta completa del sistema de monitoring
type MonitoringResponse struct {
	Requests    RequestMetrics     `json:"requests"`
	Performance PerformanceMetrics `json:"performance"`
	StatsPush   StatsPushMetrics   `json:"stats_push"`
	Database    DatabaseMetrics    `json:"database"`
	Sessions    SessionMetrics     `json:"sessions"`
	System      SystemMetrics      `json:"system"`
	Timestamp   string             `json:"timestamp"`
	Version     string             `json:"version"`
}

// RequestMetrics métricas de requests
type RequestMetrics struct {
	TotalRequests     int64                      `json:"total_requests"`
	ByEndpoint        map[string]EndpointMetrics `json:"by_endpoint"`
	SlowRequests      []SlowRequest              `json:"slow_requests"`
	Errors            []RequestError             `json:"errors"`
	SlowRequestsCount int                        `json:"slow_requests_count"`
	ErrorsCount       int                        `json:"errors_count"`
	TopEndpoints      []TopEndpoint              `json:"top_endpoints"`
}

// EndpointMetrics métricas por endpoint
type EndpointMetrics struct {
	Count     int     `json:"count"`
	AvgTime   float64 `json:"avg_time_ms"`
	TotalTime int64   `json:"total_time_ms"`
	MaxTime   int64   `json:"max_time_ms"`
	MinTime   int64   `json:"min_time_ms"`
}

// SlowRequest request lento
type SlowRequest struct {
	Endpoint  string    `json:"endpoint"`
	Duration  int64     `json:"duration_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestError error de request
type RequestError struct {
	Endpoint   string    `json:"endpoint"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// TopEndpoint endpoint más usado
type TopEndpoint struct {
	Endpoint  string `json:"endpoint"`
	Count     int    `json:"count"`
	AvgTimeMs string `json:"avg_time_ms"`
}

// PerformanceMetrics métricas de rendimiento
type PerformanceMetrics struct {
	AvgResponseTimeMs string `json:"avg_response_time_ms"`
	MaxResponseTimeMs string `json:"max_response_time_ms"`
	MinResponseTimeMs string `json:"min_response_time_ms"`
}

// StatsPushMetrics comprobaciones de versión del WebSocket de estadísticas
type StatsPushMetrics struct {
	Checks             int64  `json:"checks"`
	Skipped            int64  `json:"skipped"`
	Recomputed         int64  `json:"recomputed"`
	SkipRatePercentage string `json:"skip_rate_percentage"`
}

// DatabaseMetrics métricas del pool de conexiones
type DatabaseMetrics struct {
	Driver          string `json:"driver"`
	Status          string `json:"status"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	WaitCount       int64  `json:"wait_count"`
}

// SessionMetrics estado de Redis y sesiones activas
type SessionMetrics struct {
	Connected      bool   `json:"connected"`
	ActiveSessions int    `json:"active_sessions"`
	Status         string `json:"status"`
}

// SystemMetrics métricas del proceso
type SystemMetrics struct {
	HeapAllocMB string `json:"heap_alloc_mb"`
	SysMB       string `json:"sys_mb"`
	Goroutines  int    `json:"goroutines"`
	UptimeHours string `json:"uptime_hours"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
}

// RequestData datos de un request individual
type RequestData struct {
	Endpoint   string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}
