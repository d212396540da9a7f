package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
	"github.com/yeremiapane/order-dashboard/views"
)

const writeWait = 10 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the open dashboard sockets and pushes every dashboard change to
// all of them.
type Hub struct {
	Location *time.Location
	Now      func() time.Time

	clients map[*websocket.Conn]string // conn -> remote address
	mutex   sync.Mutex
}

func NewHub(loc *time.Location) *Hub {
	if loc == nil {
		loc = services.IST
	}
	return &Hub{
		Location: loc,
		Now:      time.Now,
		clients:  make(map[*websocket.Conn]string),
	}
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish renders dashboard snapshots into the screen view before sending.
func (h *Hub) Publish(event string, data interface{}) {
	h.Broadcast(h.Render(event, data))
}

func (h *Hub) Render(event string, data interface{}) Message {
	if snap, ok := data.(services.DashboardSnapshot); ok {
		data = views.Dashboard(snap, h.Location, h.Now())
	}
	return Message{Event: event, Data: data}
}

// Serve registers conn, sends it the message built by initial and then reads
// until the client goes away. initial runs after registration under the hub
// lock, so no broadcast reaches conn ahead of it. Incoming frames are
// ignored.
func (h *Hub) Serve(conn *websocket.Conn, addr string, initial func() Message) {
	defer h.UnregisterClient(conn)

	if err := h.registerAndSend(conn, addr, initial); err != nil {
		utils.ErrorLogger.Errorf("Error sending initial dashboard to %s: %v", addr, err)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.ErrorLogger.Errorf("Dashboard client %s read error: %v", addr, err)
			}
			return
		}
	}
}

func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.Debugf("Broadcasting %s to %d clients", msg.Event, len(h.clients))
	for conn, addr := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to %s: %v", msg.Event, addr, err)
			h.removeLocked(conn)
		}
	}
}

func (h *Hub) registerAndSend(conn *websocket.Conn, addr string, initial func() Message) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[conn] = addr
	utils.InfoLogger.Printf("Dashboard client connected: %s (%d open)", addr, len(h.clients))

	data, err := json.Marshal(initial())
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	addr, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
	utils.InfoLogger.Printf("Dashboard client disconnected: %s (%d open)", addr, len(h.clients))
}
