package services

import (
	"errors"
	"fmt"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/repository"
	"gorm.io/gorm"
)

var ErrCannotFollowSelf = errors.New("users cannot follow themselves")

// UserService handles the follow graph and user browsing.
type UserService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	messageRepo repository.MessageRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, messageRepo repository.MessageRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		messageRepo: messageRepo,
	}
}

// ListUsersInput represents filters for listing users.
type ListUsersInput struct {
	Query    string
	Page     int
	PageSize int
}

// ListUsers returns users, optionally filtered by a username substring.
func (s *UserService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		UsernameContains: input.Query,
		Page:             input.Page,
		PageSize:         input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Profile bundles a user with their recent messages and graph counts.
type Profile struct {
	User           models.User
	Messages       []models.Message
	FollowerCount  int64
	FollowingCount int64
	LikeCount      int64
}

// GetProfile returns a user's profile page data.
func (s *UserService) GetProfile(userID uint64) (*Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	messages, err := s.messageRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	followers, err := s.followRepo.CountFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := s.followRepo.CountFollowing(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}
	likes, err := s.messageRepo.CountLikesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &Profile{
		User:           *user,
		Messages:       messages,
		FollowerCount:  followers,
		FollowingCount: following,
		LikeCount:      likes,
	}, nil
}

// Follow adds a directed edge from follower to followed. Duplicate follows
// are a no-op.
func (s *UserService) Follow(followerID, followedID uint64) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}

	if _, err := s.userRepo.FindByID(followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	if err := s.followRepo.Create(follow); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// Unfollow removes the edge if present; absent edges are a no-op.
func (s *UserService) Unfollow(followerID, followedID uint64) error {
	if err := s.followRepo.Delete(followerID, followedID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

// IsFollowing reports whether an a→b edge exists.
func (s *UserService) IsFollowing(a, b uint64) (bool, error) {
	if _, err := s.followRepo.Find(a, b); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find follow: %w", err)
	}
	return true, nil
}

// IsFollowedBy reports whether a b→a edge exists.
func (s *UserService) IsFollowedBy(a, b uint64) (bool, error) {
	return s.IsFollowing(b, a)
}

// Following returns the users a user follows.
func (s *UserService) Following(userID uint64) ([]models.User, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowing(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// Followers returns the users following a user.
func (s *UserService) Followers(userID uint64) ([]models.User, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// LikedMessages returns the messages a user has liked.
func (s *UserService) LikedMessages(userID uint64) ([]models.Message, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListLikedMessages(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked messages: %w", err)
	}
	return messages, nil
}

func (s *UserService) ensureUserExists(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
