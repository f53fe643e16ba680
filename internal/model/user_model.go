package model

import "github.com/google/uuid"

type User struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password string    `gorm:"type:varchar(255);not null"`
}

func (User) TableName() string {
	return "users"
}
