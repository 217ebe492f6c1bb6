package repository

import (
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a follow edge. The composite primary key makes duplicate
// attempts a no-op rather than a second edge.
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
}

// Delete removes a follow edge
func (r *GormFollowRepository) Delete(followerID, followedID uint64) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// Find finds a specific follow edge
func (r *GormFollowRepository) Find(followerID, followedID uint64) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

// ListFollowing lists the users a user follows, most recent follow first
func (r *GormFollowRepository) ListFollowing(userID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowers lists the users following a user, most recent follow first
func (r *GormFollowRepository) ListFollowers(userID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountFollowing counts how many users a user follows
func (r *GormFollowRepository) CountFollowing(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers counts how many users follow a user
func (r *GormFollowRepository) CountFollowers(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}
