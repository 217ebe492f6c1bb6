package repository

import (
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user. Uniqueness of username and email is left
	// to the database constraints; violations surface as gorm.ErrDuplicatedKey.
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with optional username filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user and cascades to their messages, likes and
	// follow edges within a single transaction
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	UsernameContains string
	Page             int
	PageSize         int
}

// FollowRepository defines the interface for follow graph data access
type FollowRepository interface {
	// Create inserts a follow edge; duplicate edges are a no-op
	Create(follow *models.Follow) error

	// Delete removes a follow edge; absent edges are a no-op
	Delete(followerID, followedID uint64) error

	// Find finds a specific follow edge
	Find(followerID, followedID uint64) (*models.Follow, error)

	// ListFollowing lists the users a user follows
	ListFollowing(userID uint64) ([]models.User, error)

	// ListFollowers lists the users following a user
	ListFollowers(userID uint64) ([]models.User, error)

	// CountFollowing counts how many users a user follows
	CountFollowing(userID uint64) (int64, error)

	// CountFollowers counts how many users follow a user
	CountFollowers(userID uint64) (int64, error)
}

// MessageRepository defines the interface for message and like data access
type MessageRepository interface {
	// Create persists a new message
	Create(message *models.Message) error

	// FindByID finds a message by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Message, error)

	// ListByUser lists a user's messages, newest first
	ListByUser(userID uint64, limit int) ([]models.Message, error)

	// ListFeed lists messages authored by a user or anyone they follow,
	// newest first, capped at limit
	ListFeed(userID uint64, limit int) ([]models.Message, error)

	// Delete removes a message and its likes within a single transaction
	Delete(id uint64) error

	// CreateLike inserts a like edge; duplicate edges are a no-op
	CreateLike(like *models.Like) error

	// DeleteLike removes a like edge; absent edges are a no-op
	DeleteLike(userID, messageID uint64) error

	// FindLike finds a specific like edge
	FindLike(userID, messageID uint64) (*models.Like, error)

	// ListLikedMessages lists the messages a user has liked, newest like first
	ListLikedMessages(userID uint64) ([]models.Message, error)

	// CountLikes counts the likes on a message
	CountLikes(messageID uint64) (int64, error)

	// CountLikesByUser counts how many messages a user has liked
	CountLikesByUser(userID uint64) (int64, error)
}
