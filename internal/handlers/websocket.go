package handlers

import (
	"net/http"
	"time"

	"blog-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams blog mutations to websocket clients
type FeedHandler struct {
	hub *services.FeedHub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *services.FeedHub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
	}
}

// HandleWebSocket handles GET /ws. The feed is public, so no token is
// required. Clients only listen; anything they send is discarded.
func (h *FeedHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	id, messages := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	log.Info().Str("subscriber_id", id).Msg("WebSocket connection established")

	closed := make(chan struct{})
	go h.readLoop(conn, id, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-messages:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// dropped by the hub for falling behind
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("subscriber_id", id).Msg("Failed to write feed message")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// readLoop consumes control frames until the client goes away
func (h *FeedHandler) readLoop(conn *websocket.Conn, id string, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("subscriber_id", id).Msg("WebSocket error")
			}
			log.Info().Str("subscriber_id", id).Msg("WebSocket connection closed")
			return
		}
	}
}
