package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler pushes the city-wide ingestion feed to websocket clients.
type WSHandler struct {
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(eventBus providers.EventBus, logger zerolog.Logger) *WSHandler {
	return &WSHandler{eventBus: eventBus, logger: logger}
}

// StreamLogs handles the live event log feed
// GET /ws/logs
func (h *WSHandler) StreamLogs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	eventChan, err := h.eventBus.Subscribe(ctx, providers.EventChannelIngestion)
	if err != nil {
		h.logger.Error().Err(err).Msg("subscribe failed")
		return
	}
	// Cancelling ctx on return removes this connection's subscriber;
	// the shared ingestion channel keeps serving other clients.

	// Read pump: we never expect client messages, but reading is the
	// only way to observe the close frame.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug().Err(err).Msg("websocket write failed, closing")
				return
			}
		}
	}
}
