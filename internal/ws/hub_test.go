package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEventServer(t *testing.T, hub *Hub, origins []string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/events", HandleEvents(hub, origins))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
}

func readType(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(msg, &obj))
	return obj
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub()
	url := startEventServer(t, hub, nil)

	connA, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer connA.Close()
	connB, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer connB.Close()

	assert.Equal(t, MsgReady, readType(t, connA)["type"])
	assert.Equal(t, MsgReady, readType(t, connB)["type"])
	assert.Equal(t, 2, hub.ClientCount())

	task := domain.NewTask("Buy milk", "", time.Date(2022, 4, 8, 9, 0, 0, 0, time.UTC))
	hub.Publish(domain.TaskEvent{Type: domain.EventTaskCreated, Task: &task, At: time.Now()})

	for _, conn := range []*websocket.Conn{connA, connB} {
		got := readType(t, conn)
		assert.Equal(t, domain.EventTaskCreated, got["type"])
		payload, ok := got["task"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, task.ID.String(), payload["id"])
		assert.Equal(t, "Buy milk", payload["title"])
	}
}

func TestHubPingPong(t *testing.T) {
	hub := NewHub()
	url := startEventServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	readType(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	assert.Equal(t, MsgPong, readType(t, conn)["type"])
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	url := startEventServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	readType(t, conn)
	require.Equal(t, 1, hub.ClientCount())

	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	url := startEventServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	readType(t, conn)

	hub.Close()

	assert.Equal(t, 0, hub.ClientCount())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestRejectsForeignOrigin(t *testing.T) {
	hub := NewHub()
	url := startEventServer(t, hub, []string{"https://todo.example"})

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://todo.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}

func TestOriginAllowed(t *testing.T) {
	assert.True(t, originAllowed("", []string{"https://a"}))
	assert.True(t, originAllowed("https://x", nil))
	assert.True(t, originAllowed("https://x", []string{"*"}))
	assert.True(t, originAllowed("https://a", []string{"https://a"}))
	assert.False(t, originAllowed("https://b", []string{"https://a"}))
}
