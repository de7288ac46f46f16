package websocket

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// Unregisterer is the part of the hub a client needs
type Unregisterer interface {
	Unregister(c *Client)
}

// Client is one websocket connection. Clients only listen; anything they
// send is read and discarded to keep the pong deadline moving.
type Client struct {
	ID   string
	Send chan Message
	conn *websocket.Conn
	hub  Unregisterer
}

// NewClient creates a client with an empty send buffer
func NewClient(id string, conn *websocket.Conn, hub Unregisterer) *Client {
	return &Client{
		ID:   id,
		Send: make(chan Message, sendBufferSize),
		conn: conn,
		hub:  hub,
	}
}

// ReadPump drains the connection until it closes, then unregisters the client
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("client %s unexpected close: %v", c.ID, err)
			}
			return
		}
	}
}

// WritePump writes queued messages and keeps the connection alive with pings
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues msg without blocking. It returns false when the buffer is full.
func (c *Client) TrySend(msg Message) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}
