// Package httpapi exposes the HTTP surface of spec §6 over stdlib
// net/http, matching the teacher's own choice not to pull in a
// third-party router for this problem shape (internal/rpc/http_server.go).
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Talia-12/hippocampus/internal/itemservice"
	"github.com/Talia-12/hippocampus/internal/query"
	"github.com/Talia-12/hippocampus/internal/review"
	"github.com/Talia-12/hippocampus/internal/storage"
)

// Server is the HTTP surface over the domain layer.
type Server struct {
	store       storage.Store
	items       *itemservice.Service
	reviews     *review.Recorder
	queryEngine *query.Engine

	httpServer *http.Server
	listener   net.Listener
	addr       string
}

// New constructs a Server bound to addr (host:port, e.g. ":3000").
func New(store storage.Store, addr string) *Server {
	return &Server{
		store:       store,
		items:       itemservice.New(store, nil),
		reviews:     review.New(store, nil),
		queryEngine: query.New(store),
		addr:        addr,
	}
}

// Mux builds the route table of spec §6, wrapped in correlation-ID
// middleware.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /item_types", s.handleCreateItemType)
	mux.HandleFunc("GET /item_types", s.handleListItemTypes)
	mux.HandleFunc("GET /item_types/{id}", s.handleGetItemType)
	mux.HandleFunc("PATCH /item_types/{id}", s.handleUpdateItemType)
	mux.HandleFunc("GET /item_types/{id}/items", s.handleListItemsOfType)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /items/{id}/cards", s.handleCreateCardForItem)
	mux.HandleFunc("GET /items/{id}/cards", s.handleListCardsForItem)
	mux.HandleFunc("GET /items/{id}/tags", s.handleListTagsForItem)
	mux.HandleFunc("PUT /items/{id}/tags/{tag_id}", s.handleAttachTag)
	mux.HandleFunc("DELETE /items/{id}/tags/{tag_id}", s.handleDetachTag)

	mux.HandleFunc("POST /tags", s.handleCreateTag)
	mux.HandleFunc("GET /tags", s.handleListTags)

	mux.HandleFunc("GET /cards", s.handleListCards)
	mux.HandleFunc("GET /cards/{id}", s.handleGetCard)
	mux.HandleFunc("PUT /cards/{id}/priority", s.handleUpdateCardPriority)
	mux.HandleFunc("PUT /cards/{id}/suspended", s.handleSetCardSuspended)
	mux.HandleFunc("GET /cards/{id}/tags", s.handleListTagsForCard)
	mux.HandleFunc("GET /cards/{id}/reviews", s.handleListReviewsForCard)
	mux.HandleFunc("GET /cards/{id}/next_reviews", s.handlePreviewNextReviews)

	mux.HandleFunc("POST /reviews", s.handleCreateReview)

	return correlationMiddleware(mux)
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Mux(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	var err error
	s.listener, err = net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	return s.httpServer.Serve(s.listener)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
