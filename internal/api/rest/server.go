package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port   string
	server *http.Server
}

// NewRouter registers every route on a fresh router
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/slate", handler.GetSlate).Methods("GET")
	api.HandleFunc("/markets", handler.GetMarkets).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayerDetail).Methods("GET")

	return router
}

// NewServer creates a new REST API server. CORS wraps the router so
// preflight requests are answered before route matching.
func NewServer(port string, handler *Handler, allowedOrigins []string) *Server {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: corsHandler(NewRouter(handler)),
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
