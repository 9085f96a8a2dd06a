package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/domain/event"
	"github.com/gachip90/employee-task-management-be/observability"
	"github.com/gachip90/employee-task-management-be/services"
	"github.com/gachip90/employee-task-management-be/sink"
)

const (
	eventJoinRoom       = "join_room"
	eventSendMessage    = "send_message"
	eventReadMessage    = "read_message"
	eventReceiveMessage = "receive_message"
	eventMessageRead    = "message_read"
	eventError          = "error"
)

// envelope is the framing shared by both directions of the socket:
// an event name plus an event-specific payload.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type outbound struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type joinRoomPayload struct {
	GroupID string `json:"groupId"`
}

type sendMessagePayload struct {
	GroupID  string `json:"groupId"`
	Sender   string `json:"sender"`
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type readMessagePayload struct {
	GroupID   string `json:"groupId"`
	MessageID string `json:"messageId"`
}

// WSHandler upgrades chat clients and runs one reader and one writer
// goroutine per connection. The writer owns the socket for writes, so
// fanout events and command acknowledgements never interleave mid-frame.
type WSHandler struct {
	log              *slog.Logger
	chat             services.IChatService
	monitor          *observability.Monitor
	bufferSize       int
	notifySendErrors bool
	upgrader         websocket.Upgrader
}

func NewWSHandler(log *slog.Logger, chatSvc services.IChatService,
	monitor *observability.Monitor, bufferSize int, notifySendErrors bool) *WSHandler {
	return &WSHandler{
		log:              log,
		chat:             chatSvc,
		monitor:          monitor,
		bufferSize:       bufferSize,
		notifySendErrors: notifySendErrors,
		upgrader: websocket.Upgrader{
			// Group membership is open, so origin checks buy nothing here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	connID := uuid.NewString()
	connectionSink := sink.NewConnectionSink(h.bufferSize)
	h.monitor.IncrConnections()
	h.log.Info("client connected", "conn_id", connID, "remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	go h.writePump(ctx, conn, connectionSink)

	h.readLoop(ctx, conn, connID, connectionSink)

	cancel()
	h.chat.LeaveAll(connID)
	_ = conn.Close()
	h.monitor.DecrConnections()
	h.log.Info("client disconnected", "conn_id", connID)
}

// readLoop dispatches inbound envelopes until the peer goes away.
// Malformed frames are logged and skipped, never fatal.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, connID string, connectionSink *sink.Connection) {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", "conn_id", connID, "error", err)
			}
			return
		}

		switch env.Event {
		case eventJoinRoom:
			h.handleJoinRoom(env.Payload, connID, connectionSink)
		case eventSendMessage:
			h.handleSendMessage(ctx, env.Payload, connID, connectionSink)
		case eventReadMessage:
			h.handleReadMessage(ctx, env.Payload, connID)
		default:
			h.log.Debug("unknown event ignored", "conn_id", connID, "event", env.Event)
		}
	}
}

func (h *WSHandler) handleJoinRoom(raw json.RawMessage, connID string, connectionSink *sink.Connection) {
	var payload joinRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.GroupID == "" {
		h.log.Warn("join_room without groupId ignored", "conn_id", connID)
		return
	}
	h.chat.JoinGroup(connID, payload.GroupID, connectionSink)
	h.log.Info("client joined group", "conn_id", connID, "group_id", payload.GroupID)
}

func (h *WSHandler) handleSendMessage(ctx context.Context, raw json.RawMessage, connID string, connectionSink *sink.Connection) {
	var payload sendMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.log.Warn("malformed send_message ignored", "conn_id", connID, "error", err)
		return
	}

	_, err := h.chat.SendMessage(ctx, chat.SendMessageCommand{
		GroupID:  payload.GroupID,
		Sender:   payload.Sender,
		SenderID: payload.SenderID,
		Content:  payload.Message,
	})
	if err == nil {
		return
	}

	h.log.Error("message ingest failed", "conn_id", connID, "group_id", payload.GroupID, "error", err)
	if h.notifySendErrors {
		// Back to the sender only. Fanout never sees failed ingests.
		_ = connectionSink.Consume(ctx, event.IngestFailed{
			Group:  payload.GroupID,
			Reason: "message could not be saved",
		})
	}
}

func (h *WSHandler) handleReadMessage(ctx context.Context, raw json.RawMessage, connID string) {
	var payload readMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.log.Warn("malformed read_message ignored", "conn_id", connID, "error", err)
		return
	}
	messageID, err := uuid.Parse(payload.MessageID)
	if err != nil {
		// Same treatment as an unknown id: receipt dropped silently.
		h.log.Debug("read_message with bad id ignored", "conn_id", connID, "message_id", payload.MessageID)
		return
	}

	if err = h.chat.ReadMessage(ctx, chat.ReadMessageCommand{GroupID: payload.GroupID, MessageID: messageID}); err != nil {
		h.log.Error("read receipt failed", "conn_id", connID, "message_id", messageID, "error", err)
	}
}

// writePump is the only goroutine allowed to write to the socket.
func (h *WSHandler) writePump(ctx context.Context, conn *websocket.Conn, connectionSink *sink.Connection) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-connectionSink.Events:
			if err := conn.WriteJSON(toOutbound(evt)); err != nil {
				h.log.Warn("websocket push failed", "error", err)
				return
			}
		}
	}
}

func toOutbound(evt event.DomainEvent) outbound {
	switch e := evt.(type) {
	case event.MessageReceived:
		return outbound{Event: eventReceiveMessage, Payload: toMessagePayload(e.Message)}
	case event.MessageRead:
		return outbound{Event: eventMessageRead, Payload: map[string]any{
			"messageId": e.MessageID.String(),
			"isRead":    true,
			"status":    string(chat.StatusRead),
			"readAt":    e.ReadAt,
		}}
	case event.IngestFailed:
		return outbound{Event: eventError, Payload: map[string]any{"error": e.Reason}}
	default:
		return outbound{Event: eventError, Payload: map[string]any{"error": "unknown event"}}
	}
}
