package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketManager fans zone occupancy snapshots out to connected clients.
type WebSocketManager struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.RWMutex
	log        *zap.Logger
}

func NewWebSocketManager(log *zap.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
		log:        log,
	}
}

func (wsm *WebSocketManager) Start() {
	for {
		select {
		case client := <-wsm.register:
			wsm.mutex.Lock()
			wsm.clients[client] = true
			wsm.mutex.Unlock()
			wsm.log.Debug("websocket client connected", zap.Int("total", len(wsm.clients)))

		case client := <-wsm.unregister:
			wsm.mutex.Lock()
			if _, ok := wsm.clients[client]; ok {
				delete(wsm.clients, client)
				client.Close()
			}
			wsm.mutex.Unlock()
			wsm.log.Debug("websocket client disconnected", zap.Int("total", len(wsm.clients)))

		case message := <-wsm.broadcast:
			wsm.mutex.RLock()
			for client := range wsm.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					wsm.log.Warn("error writing to websocket client", zap.Error(err))
					client.Close()
					delete(wsm.clients, client)
				}
			}
			wsm.mutex.RUnlock()
		}
	}
}

// BroadcastZoneOccupancy implements service.OccupancyNotifier. Non-blocking:
// if the broadcast channel is saturated the snapshot is dropped, the next
// status change will carry fresher numbers anyway.
func (wsm *WebSocketManager) BroadcastZoneOccupancy(occ domain.ZoneOccupancy) {
	message, err := json.Marshal(occ)
	if err != nil {
		wsm.log.Error("error marshaling occupancy snapshot", zap.Error(err))
		return
	}

	select {
	case wsm.broadcast <- message:
	default:
		wsm.log.Warn("broadcast channel full, dropping occupancy snapshot",
			zap.Int("zone_id", occ.ZoneID))
	}
}

type WebSocketHandler struct {
	wsManager *WebSocketManager
	log       *zap.Logger
}

func NewWebSocketHandler(wsManager *WebSocketManager, log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager, log: log}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("failed to upgrade to websocket", zap.Error(err))
		return
	}

	h.wsManager.register <- conn

	go func() {
		defer func() {
			h.wsManager.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.log.Warn("websocket read error", zap.Error(err))
				}
				break
			}
		}
	}()
}
