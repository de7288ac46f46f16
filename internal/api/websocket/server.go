package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server pushes line-change notifications to connected clients
type Server struct {
	server *http.Server
	hub    *Hub
	ctx    context.Context
}

// NewServer creates a websocket server. ctx bounds the hub and every client pump.
func NewServer(ctx context.Context) *Server {
	s := &Server{
		hub: NewHub(),
		ctx: ctx,
	}
	go s.hub.Run(ctx)
	return s
}

// Handler returns the websocket routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/lines", s.handleLines)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start listens on port until Shutdown
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.Handler(),
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// NotifyLinesUpdated tells every client that lines for date changed
func (s *Server) NotifyLinesUpdated(date time.Time, playerIDs []int) {
	s.hub.Broadcast(Message{
		Type: MessageTypeLinesUpdated,
		Payload: LinesUpdated{
			Date:      date.Format("2006-01-02"),
			PlayerIDs: playerIDs,
		},
		Timestamp: time.Now().UTC(),
	})
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WebSocket upgrade error: %v", err)
		return
	}

	c := NewClient(uuid.New().String(), conn, s.hub)
	s.hub.Register(c)

	// Pumps follow the server context, not the request's.
	go c.WritePump(s.ctx)
	go c.ReadPump(s.ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
