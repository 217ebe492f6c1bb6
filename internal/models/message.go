package models

import "time"

type Message struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null" json:"text"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes []Like `gorm:"foreignKey:MessageID" json:"likes,omitempty"`
}
