package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/pkg/contracts/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dial spins up a test server around the hub and connects one client.
func dial(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, ServeWS(hub, w, r, testLogger()))
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) events.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(payload, &env))
	return env
}

func TestHub_SendsConnectionMessageOnRegister(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	conn, cleanup := dial(t, hub)
	defer cleanup()

	env := readEnvelope(t, conn)
	assert.Equal(t, events.TypeConnection, env.Type)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "connected", data["status"])
	assert.NotEmpty(t, data["client_id"])
}

func TestHub_BroadcastRefreshCompleteReachesClient(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	conn, cleanup := dial(t, hub)
	defer cleanup()

	// Drain the welcome message first.
	readEnvelope(t, conn)

	generated := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	hub.BroadcastRefreshComplete(events.RefreshComplete{
		DataSource:    "crm_api",
		TotalAccounts: 42,
		GeneratedAt:   generated,
	})

	env := readEnvelope(t, conn)
	assert.Equal(t, events.TypeRefreshComplete, env.Type)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "crm_api", data["data_source"])
	assert.Equal(t, float64(42), data["total_accounts"])
}

func TestHub_BroadcastRefreshFailed(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEnvelope(t, conn)

	hub.BroadcastRefreshFailed("data source unavailable")

	env := readEnvelope(t, conn)
	assert.Equal(t, events.TypeRefreshFailed, env.Type)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "data source unavailable", data["detail"])
}

func TestHub_ClientCountTracksDisconnect(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEnvelope(t, conn)
	assert.Equal(t, 1, hub.ClientCount())

	conn.Close()

	// The unregister flows through the hub loop asynchronously.
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	hub.Stop()
	hub.Stop()
}
