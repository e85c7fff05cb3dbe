package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 10 * time.Second
	feedSendBuffer = 16
)

// FeedEvent is the message pushed to admin dashboards.
type FeedEvent struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// OrderFeed keeps the connected admin websockets and pushes new orders to
// them. Each connection has a single writer goroutine.
type OrderFeed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewOrderFeed() *OrderFeed {
	return &OrderFeed{
		clients: make(map[*feedClient]struct{}),
	}
}

// ServeHTTP upgrades the request and blocks until the client goes away.
func (f *OrderFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("OrderFeed.ServeHTTP: upgrade failed: %v", err)
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
	f.register(client)
	defer f.unregister(client)

	go client.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *OrderFeed) OrderPlaced(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(FeedEvent{Type: "order.created", Order: order})
	if err != nil {
		return fmt.Errorf("failed to encode feed event: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for client := range f.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("OrderFeed.OrderPlaced: dropping slow client %s", client.conn.RemoteAddr())
			f.drop(client)
		}
	}
	return nil
}

func (f *OrderFeed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *OrderFeed) register(c *feedClient) {
	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()
}

func (f *OrderFeed) unregister(c *feedClient) {
	f.mu.Lock()
	f.drop(c)
	f.mu.Unlock()
}

// drop must be called with mu held.
func (f *OrderFeed) drop(c *feedClient) {
	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.send)
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
