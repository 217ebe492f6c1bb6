package models

import "time"

// Follow is a directed edge in the follow graph: FollowerID follows FollowedID.
type Follow struct {
	FollowerID uint64    `gorm:"primarykey" json:"follower_id"`
	FollowedID uint64    `gorm:"primarykey" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}
