package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Content   string                      `gorm:"type:text;not null"`
	Sender    string                      `gorm:"type:varchar(16);not null"`
	FileIds   datatypes.JSONSlice[string] `gorm:"not null"`
	Timestamp time.Time                   `gorm:"column:sent_at;not null;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
