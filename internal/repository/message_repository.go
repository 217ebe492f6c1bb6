package repository

import (
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormMessageRepository) FindByID(id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByUser lists a user's messages, newest first
func (r *GormMessageRepository) ListByUser(userID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := r.db.Where("user_id = ?", userID).Order("messages.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListFeed lists messages authored by a user or anyone they follow
func (r *GormMessageRepository) ListFeed(userID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message

	followedIDs := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	query := r.db.
		Preload("User").
		Where("messages.user_id = ? OR messages.user_id IN (?)", userID, followedIDs).
		Order("messages.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes a message and its likes
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Message{}, id).Error
	})
}

// CreateLike inserts a like edge; the composite primary key makes duplicate
// attempts a no-op
func (r *GormMessageRepository) CreateLike(like *models.Like) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
			DoNothing: true,
		}).
		Create(like).Error
}

// DeleteLike removes a like edge
func (r *GormMessageRepository) DeleteLike(userID, messageID uint64) error {
	return r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

// FindLike finds a specific like edge
func (r *GormMessageRepository) FindLike(userID, messageID uint64) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// ListLikedMessages lists the messages a user has liked, newest like first
func (r *GormMessageRepository) ListLikedMessages(userID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Model(&models.Message{}).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountLikes counts the likes on a message
func (r *GormMessageRepository) CountLikes(messageID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

// CountLikesByUser counts how many messages a user has liked
func (r *GormMessageRepository) CountLikesByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
