package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
)

// SSEHandler streams live clinical events for one facility over
// Server-Sent Events.
type SSEHandler struct {
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus, logger zerolog.Logger) *SSEHandler {
	return &SSEHandler{eventBus: eventBus, logger: logger}
}

// StreamFacilityEvents handles SSE connections for facility-specific events
// GET /api/stream/facilities/{id}
func (h *SSEHandler) StreamFacilityEvents(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	channel := providers.GetFacilityChannel(facilityID)
	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("subscribe failed")
		respondWithError(w, http.StatusInternalServerError, "subscription failed")
		return
	}
	// Subscriber cleanup rides on request context cancellation; the
	// channel itself stays up for any other streams watching it.

	h.sendEvent(w, "connected", map[string]interface{}{
		"facility_id": facilityID,
		"timestamp":   time.Now().UTC(),
	})
	flusher.Flush()

	// Heartbeats keep intermediaries from closing an idle stream.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			h.sendEvent(w, "health_event", event)
			flusher.Flush()
		}
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn().Err(err).Str("event", eventType).Msg("event marshal failed")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
}
