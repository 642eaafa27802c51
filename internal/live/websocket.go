package live

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/SpinWheel_Go/internal/metrics"
)

// WheelIDFunc extracts the watched wheel from a request. Returning uuid.Nil watches every wheel.
type WheelIDFunc func(r *http.Request) (uuid.UUID, error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  WebSocketBufferSize,
	WriteBufferSize: WebSocketBufferSize,
	// Any origin; the route sits behind the API key middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades the request and streams the wheel's live messages as JSON frames
func WebSocketHandler(hub *Hub, wheelID WheelIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := wheelID(r)
		if err != nil {
			http.Error(w, ErrMsgInvalidWheelID, http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the HTTP error response
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(id, parseTypes(r))
		metrics.LiveConnections.Inc()
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "wheel_id", id, "transport", "websocket")

		defer func() {
			hub.Unregister(client.ID)
			metrics.LiveConnections.Dec()
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "wheel_id", id)
		}()

		closed := make(chan struct{})
		go readPump(conn, closed)

		if err := writeMessage(conn, connectedMessage(client)); err != nil {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				return

			case msg, ok := <-client.Messages:
				if !ok {
					_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
					_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
					return
				}
				if err := writeMessage(conn, msg); err != nil {
					slog.Warn(LogMsgWriteError, "client_id", client.ID, "error", err)
					return
				}

			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

// readPump drains inbound frames so control messages are processed, and
// closes done when the peer goes away
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(MaxInboundMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeMessage(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func connectedMessage(client *Client) Message {
	return Message{
		ID:        client.ID,
		Type:      MessageTypeConnected,
		WheelID:   client.WheelID,
		Timestamp: time.Now().Unix(),
	}
}

func parseTypes(r *http.Request) []string {
	param := r.URL.Query().Get(QueryParamTypes)
	if param == "" {
		return nil
	}
	return strings.Split(param, ",")
}
