package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pallet-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStatsService devuelve el número de cálculos como total de palés
type countingStatsService struct {
	mu    sync.Mutex
	calls int
}

func (f *countingStatsService) Compute(context.Context) (*models.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &models.Statistics{TotalPallets: f.calls}, nil
}

type fakeVersionTracker struct {
	mu      sync.Mutex
	version int64
	checks  int
}

func (f *fakeVersionTracker) Changed(_ context.Context, seen int64) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.version, f.version != seen
}

func (f *fakeVersionTracker) bump() {
	f.mu.Lock()
	f.version++
	f.mu.Unlock()
}

func (f *fakeVersionTracker) checkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

func dialStats(t *testing.T, handler *MonitoringHandler) *websocket.Conn {
	router := gin.New()
	router.GET("/api/ws/stats", handler.WebSocketStats)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws/stats"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStats(t *testing.T, conn *websocket.Conn) statsMessage {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg statsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketStats_PushesOnlyWhenVersionChanges(t *testing.T) {
	stats := &countingStatsService{}
	versions := &fakeVersionTracker{}
	handler := NewMonitoringHandler(nil, stats, versions, 10*time.Millisecond, zap.NewNop())

	conn := dialStats(t, handler)

	first := readStats(t, conn)
	assert.Equal(t, "stats", first.Type)
	require.NotNil(t, first.Data)
	assert.Equal(t, 1, first.Data.TotalPallets)

	// Sin escrituras los ticks no recalculan
	require.Eventually(t, func() bool { return versions.checkCount() >= 4 }, 2*time.Second, 5*time.Millisecond)
	versions.bump()

	second := readStats(t, conn)
	require.NotNil(t, second.Data)
	assert.Equal(t, 2, second.Data.TotalPallets)
}
