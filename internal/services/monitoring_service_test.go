package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pallet-service/internal/cache"
	"pallet-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDBStats struct{ pingErr error }

func (f fakeDBStats) Ping(context.Context) error { return f.pingErr }
func (f fakeDBStats) GetStats() sql.DBStats {
	return sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeVersionStats struct{ stats cache.VersionStats }

func (f fakeVersionStats) GetStats() cache.VersionStats { return f.stats }

type fakeSessions struct{ n int }

func (f fakeSessions) ActiveSessions(context.Context) (int, error) { return f.n, nil }

func TestMonitoringService_RecordRequest(t *testing.T) {
	svc := NewMonitoringService(zap.NewNop(), "sqlite", fakeDBStats{}, fakePinger{}, fakeSessions{n: 2},
		fakeVersionStats{stats: cache.VersionStats{Checks: 4, Unchanged: 3, Changed: 1}})
	now := time.Now()

	svc.RecordRequest(models.RequestData{Endpoint: "/api/stats", Method: "GET", Duration: 20 * time.Millisecond, StatusCode: 200, Timestamp: now})
	svc.RecordRequest(models.RequestData{Endpoint: "/api/stats", Method: "GET", Duration: 40 * time.Millisecond, StatusCode: 200, Timestamp: now})
	svc.RecordRequest(models.RequestData{Endpoint: "/api/export", Method: "GET", Duration: 1500 * time.Millisecond, StatusCode: 500, Timestamp: now})

	metrics := svc.GetMetrics(context.Background())

	assert.Equal(t, int64(3), metrics.Requests.TotalRequests)
	stats := metrics.Requests.ByEndpoint["GET /api/stats"]
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 30.0, stats.AvgTime)
	assert.Equal(t, int64(20), stats.MinTime)
	assert.Equal(t, int64(40), stats.MaxTime)

	assert.Equal(t, 1, metrics.Requests.SlowRequestsCount)
	assert.Equal(t, 1, metrics.Requests.ErrorsCount)
	assert.Equal(t, 500, metrics.Requests.Errors[0].StatusCode)

	require.Len(t, metrics.Requests.TopEndpoints, 2)
	assert.Equal(t, "GET /api/stats", metrics.Requests.TopEndpoints[0].Endpoint)

	assert.Equal(t, "1500ms", metrics.Performance.MaxResponseTimeMs)
	assert.Equal(t, "20ms", metrics.Performance.MinResponseTimeMs)

	assert.Equal(t, "sqlite", metrics.Database.Driver)
	assert.Equal(t, "online", metrics.Database.Status)
	assert.Equal(t, 3, metrics.Database.OpenConnections)

	assert.True(t, metrics.Sessions.Connected)
	assert.Equal(t, 2, metrics.Sessions.ActiveSessions)
	assert.NotEmpty(t, metrics.System.GoVersion)
	assert.Equal(t, "75.00%", metrics.StatsPush.SkipRatePercentage)
	assert.Equal(t, int64(1), metrics.StatsPush.Recomputed)
}

func TestMonitoringService_Offline(t *testing.T) {
	svc := NewMonitoringService(zap.NewNop(), "postgres",
		fakeDBStats{pingErr: errors.New("down")}, fakePinger{err: errors.New("down")}, fakeSessions{}, fakeVersionStats{})

	metrics := svc.GetMetrics(context.Background())
	assert.Equal(t, "offline", metrics.Database.Status)
	assert.Equal(t, "offline", metrics.Sessions.Status)
	assert.False(t, metrics.Sessions.Connected)
	assert.Equal(t, "0ms", metrics.Performance.MinResponseTimeMs)
	assert.Empty(t, metrics.Requests.TopEndpoints)
	assert.Equal(t, "0.00%", metrics.StatsPush.SkipRatePercentage)
}
