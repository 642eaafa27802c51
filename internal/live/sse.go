package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/SpinWheel_Go/internal/metrics"
)

// SSEHandler streams the wheel's live messages as server-sent events, for clients
// that cannot hold a websocket open
func SSEHandler(hub *Hub, wheelID WheelIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := wheelID(r)
		if err != nil {
			http.Error(w, ErrMsgInvalidWheelID, http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		client := hub.Register(id, parseTypes(r))
		metrics.LiveConnections.Inc()
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "wheel_id", id, "transport", "sse")

		defer func() {
			hub.Unregister(client.ID)
			metrics.LiveConnections.Dec()
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "wheel_id", id)
		}()

		if msg, err := FormatSSEMessage(connectedMessage(client)); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case msg, ok := <-client.Messages:
				if !ok {
					return
				}
				data, err := FormatSSEMessage(msg)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err)
					continue
				}
				if _, err := w.Write(data); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

			case <-ticker.C:
				data, _ := FormatSSEMessage(Message{
					Type:      MessageTypeKeepalive,
					WheelID:   id,
					Timestamp: time.Now().Unix(),
				})
				if _, err := w.Write(data); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
