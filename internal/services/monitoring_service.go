package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"pallet-service/internal/cache"
	"pallet-service/internal/models"

	"go.uber.org/zap"
)

const (
	slowRequestThreshold = time.Second
	maxTrackedEvents     = 100
	maxTopEndpoints      = 10
)

// MonitoringService métricas de requests, base de datos, sesiones y proceso
type MonitoringService interface {
	GetMetrics(ctx context.Context) *models.MonitoringResponse
	RecordRequest(data models.RequestData)
	GetStatsPushStats() models.StatsPushMetrics
	GetDatabaseStats(ctx context.Context) models.DatabaseMetrics
	GetSessionStats(ctx context.Context) models.SessionMetrics
	GetSystemStats() models.SystemMetrics
}

// DatabaseStats lo que el monitoring necesita del pool SQL
type DatabaseStats interface {
	Ping(ctx context.Context) error
	GetStats() sql.DBStats
}

// RedisPinger comprueba la conexión con Redis
type RedisPinger interface {
	Ping(ctx context.Context) error
}

// VersionStatsProvider contadores de la versión de estadísticas
type VersionStatsProvider interface {
	GetStats() cache.VersionStats
}

// SessionCounter cuenta las sesiones activas
type SessionCounter interface {
	ActiveSessions(ctx context.Context) (int, error)
}

type monitoringService struct {
	logger   *zap.Logger
	driver   string
	db       DatabaseStats
	redis    RedisPinger
	sessions SessionCounter
	versions VersionStatsProvider

	// Métricas de requests
	requestsMutex sync.RWMutex
	requests      map[string]*models.EndpointMetrics
	slowRequests  []models.SlowRequest
	errors        []models.RequestError
	totalRequests int64

	startTime time.Time
}

func NewMonitoringService(
	logger *zap.Logger,
	driver string,
	db DatabaseStats,
	redis RedisPinger,
	sessions SessionCounter,
	versions VersionStatsProvider,
) MonitoringService {
	return &monitoringService{
		logger:    logger,
		driver:    driver,
		db:        db,
		redis:     redis,
		sessions:  sessions,
		versions:  versions,
		requests:  make(map[string]*models.EndpointMetrics),
		startTime: time.Now(),
	}
}

func (s *monitoringService) RecordRequest(data models.RequestData) {
	s.requestsMutex.Lock()
	defer s.requestsMutex.Unlock()

	endpointKey := fmt.Sprintf("%s %s", data.Method, data.Endpoint)

	metrics, exists := s.requests[endpointKey]
	if !exists {
		metrics = &models.EndpointMetrics{MinTime: math.MaxInt64}
		s.requests[endpointKey] = metrics
	}

	durationMs := data.Duration.Milliseconds()
	metrics.Count++
	metrics.TotalTime += durationMs
	metrics.AvgTime = float64(metrics.TotalTime) / float64(metrics.Count)
	if durationMs > metrics.MaxTime {
		metrics.MaxTime = durationMs
	}
	if durationMs < metrics.MinTime {
		metrics.MinTime = durationMs
	}

	s.totalRequests++

	if data.Duration > slowRequestThreshold {
		s.slowRequests = append(s.slowRequests, models.SlowRequest{
			Endpoint:  endpointKey,
			Duration:  durationMs,
			Timestamp: data.Timestamp,
		})
		// Mantener solo los últimos 100
		if len(s.slowRequests) > maxTrackedEvents {
			s.slowRequests = s.slowRequests[1:]
		}
	}

	if data.StatusCode >= 400 {
		s.errors = append(s.errors, models.RequestError{
			Endpoint:   endpointKey,
			StatusCode: data.StatusCode,
			Timestamp:  data.Timestamp,
		})
		if len(s.errors) > maxTrackedEvents {
			s.errors = s.errors[1:]
		}
	}
}

func (s *monitoringService) GetMetrics(ctx context.Context) *models.MonitoringResponse {
	s.requestsMutex.RLock()
	requestMetrics := s.calculateRequestMetrics()
	performanceMetrics := s.calculatePerformanceMetrics()
	s.requestsMutex.RUnlock()

	return &models.MonitoringResponse{
		Requests:    requestMetrics,
		Performance: performanceMetrics,
		StatsPush:   s.GetStatsPushStats(),
		Database:    s.GetDatabaseStats(ctx),
		Sessions:    s.GetSessionStats(ctx),
		System:      s.GetSystemStats(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     "1.0",
	}
}

func (s *monitoringService) calculateRequestMetrics() models.RequestMetrics {
	byEndpoint := make(map[string]models.EndpointMetrics, len(s.requests))
	keys := make([]string, 0, len(s.requests))
	for key, metrics := range s.requests {
		byEndpoint[key] = *metrics
		keys = append(keys, key)
	}

	// Ordenar por count descendente, luego por nombre
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := s.requests[keys[i]].Count, s.requests[keys[j]].Count
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})

	topEndpoints := make([]models.TopEndpoint, 0, maxTopEndpoints)
	for i, key := range keys {
		if i >= maxTopEndpoints {
			break
		}
		topEndpoints = append(topEndpoints, models.TopEndpoint{
			Endpoint:  key,
			Count:     s.requests[key].Count,
			AvgTimeMs: fmt.Sprintf("%.2fms", s.requests[key].AvgTime),
		})
	}

	return models.RequestMetrics{
		TotalRequests:     s.totalRequests,
		ByEndpoint:        byEndpoint,
		SlowRequests:      append([]models.SlowRequest(nil), s.slowRequests...),
		Errors:            append([]models.RequestError(nil), s.errors...),
		SlowRequestsCount: len(s.slowRequests),
		ErrorsCount:       len(s.errors),
		TopEndpoints:      topEndpoints,
	}
}

func (s *monitoringService) calculatePerformanceMetrics() models.PerformanceMetrics {
	var totalTime, maxTime int64
	var minTime int64 = math.MaxInt64
	var count int

	for _, metrics := range s.requests {
		totalTime += metrics.TotalTime
		count += metrics.Count
		if metrics.MaxTime > maxTime {
			maxTime = metrics.MaxTime
		}
		if metrics.MinTime < minTime {
			minTime = metrics.MinTime
		}
	}

	var avgTime float64
	if count > 0 {
		avgTime = float64(totalTime) / float64(count)
	}
	if minTime == math.MaxInt64 {
		minTime = 0
	}

	return models.PerformanceMetrics{
		AvgResponseTimeMs: fmt.Sprintf("%.2fms", avgTime),
		MaxResponseTimeMs: fmt.Sprintf("%dms", maxTime),
		MinResponseTimeMs: fmt.Sprintf("%dms", minTime),
	}
}

func (s *monitoringService) GetStatsPushStats() models.StatsPushMetrics {
	stats := s.versions.GetStats()

	var skipRate float64
	if stats.Checks > 0 {
		skipRate = float64(stats.Unchanged) / float64(stats.Checks)
	}

	return models.StatsPushMetrics{
		Checks:             stats.Checks,
		Skipped:            stats.Unchanged,
		Recomputed:         stats.Changed,
		SkipRatePercentage: fmt.Sprintf("%.2f%%", skipRate*100),
	}
}

func (s *monitoringService) GetDatabaseStats(ctx context.Context) models.DatabaseMetrics {
	stats := s.db.GetStats()

	status := "online"
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("⚠️ Base de datos no responde", zap.Error(err))
		status = "offline"
	}

	return models.DatabaseMetrics{
		Driver:          s.driver,
		Status:          status,
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		WaitCount:       stats.WaitCount,
	}
}

func (s *monitoringService) GetSessionStats(ctx context.Context) models.SessionMetrics {
	if err := s.redis.Ping(ctx); err != nil {
		return models.SessionMetrics{Status: "offline"}
	}

	active, err := s.sessions.ActiveSessions(ctx)
	if err != nil {
		s.logger.Warn("⚠️ Error contando sesiones", zap.Error(err))
	}

	return models.SessionMetrics{
		Connected:      true,
		ActiveSessions: active,
		Status:         "online",
	}
}

func (s *monitoringService) GetSystemStats() models.SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return models.SystemMetrics{
		HeapAllocMB: fmt.Sprintf("%.2f MB", float64(m.HeapAlloc)/1024/1024),
		SysMB:       fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		Goroutines:  runtime.NumGoroutine(),
		UptimeHours: fmt.Sprintf("%.2fh", time.Since(s.startTime).Hours()),
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
	}
}
