package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Message indexes for profile pages and the home feed
		{&models.Message{}, "messages", "idx_messages_user_id", "user_id"},
		{&models.Message{}, "messages", "idx_messages_created_at", "created_at"},

		// Follow graph lookups in both directions
		{&models.Follow{}, "follows", "idx_follows_follower_id", "follower_id"},
		{&models.Follow{}, "follows", "idx_follows_followed_id", "followed_id"},

		// Like lookups per user and per message
		{&models.Like{}, "likes", "idx_likes_user_id", "user_id"},
		{&models.Like{}, "likes", "idx_likes_message_id", "message_id"},
	}

	for _, idx := range indexes {
		// The migrator knows each dialect's catalog, so the existence
		// check works on postgres and mysql alike
		if db.Migrator().HasIndex(idx.model, idx.name) {
			logrus.Debugf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
