package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	FileIds   []string  `json:"fileIds"`
	Timestamp time.Time `json:"timestamp"`
}

type SendMessageRequest struct {
	Content string   `json:"content" validate:"required"`
	FileIds []string `json:"fileIds"`
}

type SendMessageResponse struct {
	UserMessage *ChatMessageResponse `json:"userMessage"`
	AiMessage   *ChatMessageResponse `json:"aiMessage"`
	Error       string               `json:"error,omitempty"`
}
