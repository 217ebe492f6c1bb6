package repository

import (
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create persists a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with optional username filtering and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if filter.UsernameContains != "" {
		query = query.Where("username LIKE ?", "%"+filter.UsernameContains+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("users.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user together with their messages, likes and follow edges
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Likes placed on the user's messages by anyone
		messageIDs := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Likes the user placed themselves
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		// Both directions of the follow graph
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
