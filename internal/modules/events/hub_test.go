package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startStream(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(hub, zap.NewNop(), func(*http.Request) bool { return true })
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", int64(42))
		c.Next()
	})
	h.RegisterRoutes(api)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := startStream(t, hub)

	first := dial(t, srv)
	second := dial(t, srv)
	waitFor(t, func() bool { return hub.Count() == 2 })

	sent := hub.Broadcast(ClientMessage{Type: TypeInvalidate, Tags: []string{TagAssets}})
	assert.Equal(t, 2, sent)

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg ClientMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, TypeInvalidate, msg.Type)
		assert.Equal(t, []string{TagAssets}, msg.Tags)
	}
}

func TestHub_UnregistersClosedConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := startStream(t, hub)

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Count() == 1 })

	require.NoError(t, conn.Close())
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestHub_BroadcastDropsClientsThatFallBehind(t *testing.T) {
	srv := startStream(t, NewHub())
	conn := dial(t, srv)

	// nothing drains this queue, like a browser that stopped reading
	hub := NewHub()
	hub.Register(conn)
	msg := ClientMessage{Type: TypeInvalidate, Tags: []string{TagAssets}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < sendBuffer; i++ {
			assert.Equal(t, 1, hub.Broadcast(msg))
		}
		assert.Equal(t, 0, hub.Broadcast(msg))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}
	assert.Equal(t, 0, hub.Count())
}
