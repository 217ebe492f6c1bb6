package models

import "time"

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"type:varchar(255)" json:"location"`
	ImageURL       string    `gorm:"type:varchar(512)" json:"image_url"`
	HeaderImageURL string    `gorm:"type:varchar(512)" json:"header_image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Messages  []Message `gorm:"foreignKey:UserID" json:"-"`
	Likes     []Like    `gorm:"foreignKey:UserID" json:"-"`
	Following []Follow  `gorm:"foreignKey:FollowerID" json:"-"`
	Followers []Follow  `gorm:"foreignKey:FollowedID" json:"-"`
}
