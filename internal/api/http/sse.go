package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foodorder/internal/relay"
)

// streamEvents pushes order feed events to a staff view over Server-Sent
// Events. Slow consumers drop events rather than block the bus; the view
// resyncs from /api/board.
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events := make(chan relay.Event, 16)
	deliver := func(ev relay.Event) {
		select {
		case events <- ev:
		default:
		}
	}
	subs := []relay.Subscription{
		h.Events.Subscribe(relay.CollectionOrders, relay.EventInsert, deliver),
		h.Events.Subscribe(relay.CollectionOrders, relay.EventUpdate, deliver),
		h.Events.Subscribe(relay.CollectionMenuItems, relay.EventUpdate, deliver),
	}
	defer func() {
		for _, sub := range subs {
			h.Events.Unsubscribe(sub)
		}
	}()

	keepalive := time.NewTicker(25 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case ev := <-events:
			name, payload := encodeEvent(ev)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
			flusher.Flush()
		}
	}
}

func encodeEvent(ev relay.Event) (string, []byte) {
	if ev.Collection == relay.CollectionMenuItems {
		payload, _ := json.Marshal(map[string]interface{}{
			"item_id": ev.ItemID,
		})
		return "menu_changed", payload
	}
	if ev.Kind == relay.EventInsert {
		payload, _ := json.Marshal(ev.Order)
		return "order_created", payload
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": ev.OrderID,
		"status":   ev.Status,
	})
	return "status_changed", payload
}
