package alertws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/saeid-a/AthleteEngineBack/internal/models"
)

// Hub fans risk alerts out to every connected coach dashboard. The Load
// Monitor publishes through NotifyHighRisk; delivery past the socket is
// out of scope.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan models.RiskAlert
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.RiskAlert, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
		case alert := <-h.broadcast:
			h.deliver(alert)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyHighRisk satisfies the load monitor's notifier port. Non-blocking:
// if the hub loop is saturated the alert is dropped, never the batch.
func (h *Hub) NotifyHighRisk(alert models.RiskAlert) {
	select {
	case h.broadcast <- alert:
	default:
		log.Printf("alert hub: dropped alert for athlete %d", alert.AthleteID)
	}
}

func (h *Hub) deliver(alert models.RiskAlert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		log.Printf("alert hub: encode alert: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ReadPump drains the connection so pings and closes are processed; alert
// subscribers send nothing meaningful upstream.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
