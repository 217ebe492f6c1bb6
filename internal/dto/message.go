package dto

import (
	"time"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// MessageListResponse represents a list of messages
type MessageListResponse struct {
	Messages []MessageDTO `json:"messages"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		Text:      message.Text,
		UserID:    message.UserID,
		CreatedAt: message.CreatedAt,
	}

	// Include author if preloaded
	if message.User.ID != 0 {
		user := ToUserDTO(message.User)
		dto.User = &user
	}

	return dto
}

// ToMessageListResponse converts a slice of messages to MessageListResponse
func ToMessageListResponse(messages []models.Message) MessageListResponse {
	items := make([]MessageDTO, len(messages))
	for i, message := range messages {
		items[i] = ToMessageDTO(message)
	}

	return MessageListResponse{Messages: items}
}
