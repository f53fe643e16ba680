package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderAI   ChatSender = "ai"
)

type ChatMessage struct {
	Id        uuid.UUID
	Content   string
	Sender    ChatSender
	FileIds   []string
	Timestamp time.Time
}
