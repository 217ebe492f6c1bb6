package dto

import (
	"time"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Bio            string `json:"bio,omitempty"`
	Location       string `json:"location,omitempty"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url"`
}

// UserProfileDTO represents a user's profile page: the user, their messages
// and follow graph counts
type UserProfileDTO struct {
	UserDTO
	CreatedAt      time.Time    `json:"created_at"`
	Messages       []MessageDTO `json:"messages"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
	LikeCount      int64        `json:"like_count"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Bio:            user.Bio,
		Location:       user.Location,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
	}
}

// ToUserProfileDTO converts profile data to UserProfileDTO
func ToUserProfileDTO(profile services.Profile) UserProfileDTO {
	messages := make([]MessageDTO, len(profile.Messages))
	for i, message := range profile.Messages {
		messages[i] = ToMessageDTO(message)
	}

	return UserProfileDTO{
		UserDTO:        ToUserDTO(profile.User),
		CreatedAt:      profile.User.CreatedAt,
		Messages:       messages,
		FollowerCount:  profile.FollowerCount,
		FollowingCount: profile.FollowingCount,
		LikeCount:      profile.LikeCount,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
