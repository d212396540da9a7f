package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/services"
)

func startHubServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	return startHubServerWith(t, h, func() Message { return Message{Event: "hello", Data: "welcome"} })
}

func startHubServerWith(t *testing.T, h *Hub, initial func() Message) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(conn, r.RemoteAddr, initial)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	h := NewHub(nil)
	server := startHubServer(t, h)

	first := dial(t, server)
	second := dial(t, server)
	assert.Equal(t, "hello", readMessage(t, first)["event"])
	assert.Equal(t, "hello", readMessage(t, second)["event"])
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	h.Publish(services.EventOrderCompleted, map[string]string{"orderId": "order-001"})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, services.EventOrderCompleted, msg["event"])
		assert.Equal(t, "order-001", msg["data"].(map[string]interface{})["orderId"])
	}
}

func TestHub_RendersSnapshots(t *testing.T) {
	h := NewHub(services.IST)
	h.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, services.IST) }

	msg := h.Render(services.EventOrdersRefreshed, services.DashboardSnapshot{
		Restaurant:     &models.Restaurant{Name: "Bella Vista Restaurant"},
		SignedIn:       true,
		Filter:         models.FilterAll,
		FilteredOrders: []models.Order{{ID: "a", Table: "3", Status: models.OrderStatusPending}},
	})

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"Bella Vista Restaurant"`)
	assert.Contains(t, string(data), `"tableLabel":"Table 3"`)
	assert.Contains(t, string(data), `"dateLabel":"Wed, May 1"`)
}

func TestHub_ClientLeaves(t *testing.T) {
	h := NewHub(nil)
	server := startHubServer(t, h)

	conn := dial(t, server)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_InitialViewBuiltAfterRegistration(t *testing.T) {
	h := NewHub(nil)
	registered := make(chan int, 1)
	server := startHubServerWith(t, h, func() Message {
		// runs under the hub lock
		registered <- len(h.clients)
		return Message{Event: "hello", Data: "welcome"}
	})

	conn := dial(t, server)
	assert.Equal(t, "hello", readMessage(t, conn)["event"])
	assert.Equal(t, 1, <-registered)

	h.Publish(services.EventFilterChanged, "pending")
	assert.Equal(t, services.EventFilterChanged, readMessage(t, conn)["event"])
}
