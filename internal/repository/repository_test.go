package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB wires gorm to a sqlmock connection so repository SQL can be
// asserted without a live Postgres.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
		AddRow(1, "alice", "alice@x.com", "hashed")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice", 1).
		WillReturnRows(rows)

	user, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.EqualValues(t, 1, user.ID)
	require.Equal(t, "alice", user.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFollowRepository_CountFollowers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE followed_id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountFollowers(42)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMessageRepository_ListFeed_QueriesFollowGraph(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	// The feed must restrict to the user and the accounts they follow
	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE \(?messages\.user_id = \$1 OR messages\.user_id IN \(\(?SELECT followed_id FROM "follows" WHERE follower_id = \$2\)?\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "user_id"}))

	messages, err := repo.ListFeed(7, 100)
	require.NoError(t, err)
	require.Empty(t, messages)

	require.NoError(t, mock.ExpectationsWereMet())
}
