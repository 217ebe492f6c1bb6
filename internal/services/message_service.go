package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/constants"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound     = errors.New("message not found")
	ErrMessageTextRequired = errors.New("message text is required")
	ErrMessageTooLong      = errors.New("message text exceeds the maximum length")
	ErrNotMessageOwner     = errors.New("only the message owner can perform this action")
)

// MessageService handles message and like business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// CreateMessageInput represents input for posting a message. UserID is always
// the authenticated session user; handlers never accept it from the caller.
type CreateMessageInput struct {
	Text   string
	UserID uint64
}

// CreateMessage validates and persists a new message owned by the session user.
func (s *MessageService) CreateMessage(input CreateMessageInput) (*models.Message, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrMessageTextRequired
	}
	// The bound is 140 characters, not bytes
	if utf8.RuneCountInString(text) > constants.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	message := &models.Message{
		Text:   text,
		UserID: input.UserID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return s.messageRepo.FindByID(message.ID, "User")
}

// GetMessage returns a message with its author.
func (s *MessageService) GetMessage(messageID uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return message, nil
}

// DeleteMessage deletes a message if the actor owns it. The ownership check
// runs before any mutation.
func (s *MessageService) DeleteMessage(messageID, actorID uint64) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID != actorID {
		return ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// ToggleLike likes the message when no edge exists and unlikes it otherwise.
// Returns whether the message is liked after the call. Any message may be
// liked, including the actor's own.
func (s *MessageService) ToggleLike(userID, messageID uint64) (bool, error) {
	if _, err := s.messageRepo.FindByID(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("failed to find message: %w", err)
	}

	_, err := s.messageRepo.FindLike(userID, messageID)
	switch {
	case err == nil:
		if err := s.messageRepo.DeleteLike(userID, messageID); err != nil {
			return false, fmt.Errorf("failed to delete like: %w", err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{
			UserID:    userID,
			MessageID: messageID,
		}
		if err := s.messageRepo.CreateLike(like); err != nil {
			return false, fmt.Errorf("failed to create like: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to find like: %w", err)
	}
}

// LikeCount returns the number of likes on a message.
func (s *MessageService) LikeCount(messageID uint64) (int64, error) {
	count, err := s.messageRepo.CountLikes(messageID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// HomeFeed returns the newest messages by the user and everyone they follow.
func (s *MessageService) HomeFeed(userID uint64) ([]models.Message, error) {
	messages, err := s.messageRepo.ListFeed(userID, constants.HomeFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return messages, nil
}
