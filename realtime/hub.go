package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/gastro-os/utils"
)

// Event types
const (
	EventSalonUpdate = "salon_update"
	EventTableStatus = "table_status"
)

const writeWait = 5 * time.Second

type Message struct {
	Event        string      `json:"event"`
	RestaurantID uint        `json:"restaurant_id"`
	Data         interface{} `json:"data"`
}

type client struct {
	role         string
	restaurantID uint
}

// Hub holds the websocket clients of every restaurant. Messages only reach
// clients of the restaurant they belong to.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]client)}
}

var defaultHub = NewHub()

// Default is the hub used by the websocket handler and the change monitor.
func Default() *Hub { return defaultHub }

func (h *Hub) Register(conn *websocket.Conn, role string, restaurantID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = client{role: role, restaurantID: restaurantID}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Count is the number of clients connected for a restaurant.
func (h *Hub) Count(restaurantID uint) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, c := range h.clients {
		if c.restaurantID == restaurantID {
			n++
		}
	}
	return n
}

// BroadcastSalonUpdate tells a restaurant's clients that its floor plan
// changed and should be fetched again.
func (h *Hub) BroadcastSalonUpdate(restaurantID uint, data interface{}) int {
	return h.Broadcast(Message{Event: EventSalonUpdate, RestaurantID: restaurantID, Data: data})
}

func (h *Hub) BroadcastTableStatus(restaurantID uint, data interface{}) int {
	return h.Broadcast(Message{Event: EventTableStatus, RestaurantID: restaurantID, Data: data})
}

// Broadcast writes msg to the restaurant's clients and returns how many got
// it. Clients that fail a write are dropped.
func (h *Hub) Broadcast(msg Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error marshaling message")
		return 0
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for conn, c := range h.clients {
		if c.restaurantID != msg.RestaurantID {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"role":          c.role,
				"restaurant_id": c.restaurantID,
			}).WithError(err).Error("error sending message to client")
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":         msg.Event,
		"restaurant_id": msg.RestaurantID,
		"clients":       sent,
	}).Debug("broadcast")
	return sent
}
