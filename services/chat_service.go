//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"

	"github.com/gachip90/employee-task-management-be/contract"
	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/runtime"
)

type IChatService interface {
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	ReadMessage(ctx context.Context, cmd chat.ReadMessageCommand) error
	GetMessages(cmd chat.GetMessagesCommand) ([]chat.Message, error)
	JoinGroup(connID string, groupID string, sink contract.EventSink)
	LeaveAll(connID string)
}

type ChatService struct {
	orchestrator *runtime.Orchestrator
}

func NewChatService(o *runtime.Orchestrator) *ChatService {
	return &ChatService{orchestrator: o}
}

func (s *ChatService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	return s.orchestrator.SendMessage(ctx, cmd)
}

func (s *ChatService) ReadMessage(ctx context.Context, cmd chat.ReadMessageCommand) error {
	return s.orchestrator.ReadMessage(ctx, cmd)
}

func (s *ChatService) GetMessages(cmd chat.GetMessagesCommand) ([]chat.Message, error) {
	return s.orchestrator.GetMessages(cmd)
}

func (s *ChatService) JoinGroup(connID string, groupID string, sink contract.EventSink) {
	s.orchestrator.JoinGroup(connID, groupID, sink)
}

func (s *ChatService) LeaveAll(connID string) {
	s.orchestrator.LeaveAll(connID)
}
