package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename     string    `gorm:"type:varchar(255);not null"`
	OriginalName string    `gorm:"type:varchar(255);not null"`
	MimeType     string    `gorm:"type:varchar(255);not null"`
	Size         int64     `gorm:"not null"`
	Content      *string   `gorm:"type:text"`
	UploadedAt   time.Time `gorm:"not null;index"`
}

func (File) TableName() string {
	return "files"
}
