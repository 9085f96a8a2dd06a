package server

import (
	"log/slog"
	"net/http"

	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/services"
)

type MessageHandler struct {
	log  *slog.Logger
	chat services.IChatService
}

func NewMessageHandler(log *slog.Logger, chat services.IChatService) *MessageHandler {
	return &MessageHandler{log: log, chat: chat}
}

// GetMessages returns the chronological history of a group.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("groupId")
	if groupID == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("groupId is required"))
		return
	}

	messages, err := h.chat.GetMessages(chat.GetMessagesCommand{GroupID: groupID})
	if err != nil {
		h.log.Error("failed to load message history", "group_id", groupID, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to retrieve messages"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"data": toMessagePayloads(messages),
	})
}
