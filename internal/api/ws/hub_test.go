package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedeck/filedeck/internal/api/ws"
	"github.com/filedeck/filedeck/internal/infrastructure/logging"
	"github.com/filedeck/filedeck/internal/shared/types"
)

func newTestHub(t *testing.T) (*ws.Hub, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub(logging.NewDefault(), nil)
	router := gin.New()
	router.GET("/stream", hub.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Welcome message arrives first
	var msg types.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "system", msg.Type)

	return hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) types.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg types.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPingPong(t *testing.T) {
	_, conn := newTestHub(t)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "ping"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestUnknownMessageType(t *testing.T) {
	_, conn := newTestHub(t)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "bogus"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
}

func TestNotifyChangeBroadcasts(t *testing.T) {
	hub, conn := newTestHub(t)

	hub.NotifyChange("copy", "/srv/files/a.txt")

	msg := readMessage(t, conn)
	assert.Equal(t, "fs.change", msg.Type)
	assert.Equal(t, "copy", msg.Data["op"])
	assert.Equal(t, "/srv/files/a.txt", msg.Data["path"])
}

func TestClientCountTracksConnections(t *testing.T) {
	hub, conn := newTestHub(t)
	assert.Equal(t, 1, hub.ClientCount())

	conn.Close()
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
