package chat

import "github.com/google/uuid"

type Command interface {
	Group() string
}

type SendMessageCommand struct {
	GroupID  string
	Sender   string
	SenderID string
	Content  string
}

func (c SendMessageCommand) Group() string {
	return c.GroupID
}

type ReadMessageCommand struct {
	GroupID   string
	MessageID uuid.UUID
}

func (c ReadMessageCommand) Group() string {
	return c.GroupID
}

type GetMessagesCommand struct {
	GroupID string
}

func (c GetMessagesCommand) Group() string {
	return c.GroupID
}
