package models

import "time"

type Like struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	MessageID uint64    `gorm:"primarykey" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
}
