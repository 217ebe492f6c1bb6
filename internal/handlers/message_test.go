package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/constants"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/database"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/dto"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/middleware"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/repository"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/services"
)

type messageTestEnv struct {
	db             *gorm.DB
	handler        *MessageHandler
	messageService *services.MessageService
	userService    *services.UserService
}

func setupMessageTestEnv(t *testing.T) messageTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	messageService := services.NewMessageService(messageRepo, userRepo)
	userService := services.NewUserService(userRepo, followRepo, messageRepo)
	handler := NewMessageHandler(messageService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return messageTestEnv{
		db:             db,
		handler:        handler,
		messageService: messageService,
		userService:    userService,
	}
}

func messageTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func TestMessageHandler_CreateMessage(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	body, err := json.Marshal(map[string]string{"text": "my first warble"})
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/messages", body, alice.ID)
	env.handler.CreateMessage(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "my first warble", response.Text)
	require.Equal(t, alice.ID, response.UserID, "owner is always the session user")
	require.NotNil(t, response.User)
	require.Equal(t, "alice", response.User.Username)
}

func TestMessageHandler_CreateMessage_TooLong(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	body, err := json.Marshal(map[string]string{"text": strings.Repeat("x", constants.MaxMessageLength+1)})
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/messages", body, alice.ID)
	env.handler.CreateMessage(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	// One character past the bound is rejected even when each character
	// is multiple bytes
	body, err = json.Marshal(map[string]string{"text": strings.Repeat("é", constants.MaxMessageLength+1)})
	require.NoError(t, err)

	c, w = messageTestContext(http.MethodPost, "/api/messages", body, alice.ID)
	env.handler.CreateMessage(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMessageHandler_CreateMessage_MaxLength(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	// The bound counts characters, not bytes: 140 two-byte runes fit
	text := strings.Repeat("é", constants.MaxMessageLength)
	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)

	c, w := messageTestContext(http.MethodPost, "/api/messages", body, alice.ID)
	env.handler.CreateMessage(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, text, response.Text)
}

func TestMessageHandler_DeleteMessage_Owner(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	msg := &models.Message{Text: "delete me", UserID: alice.ID}
	require.NoError(t, env.db.Create(msg).Error)
	require.NoError(t, env.db.Create(&models.Like{UserID: bob.ID, MessageID: msg.ID}).Error)

	c, w := messageTestContext(http.MethodDelete, "/api/messages/1", nil, alice.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(msg.ID, 10)}}
	env.handler.DeleteMessage(c)

	require.Equal(t, http.StatusOK, w.Code)

	var messages, likes int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&messages).Error)
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likes).Error)
	require.Zero(t, messages)
	require.Zero(t, likes, "deleting a message removes its likes")
}

func TestMessageHandler_DeleteMessage_NotOwner(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	msg := &models.Message{Text: "alice's warble", UserID: alice.ID}
	require.NoError(t, env.db.Create(msg).Error)

	c, w := messageTestContext(http.MethodDelete, "/api/messages/1", nil, bob.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(msg.ID, 10)}}
	env.handler.DeleteMessage(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "message stays intact")
}

func TestMessageHandler_DeleteMessage_Anonymous(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	msg := &models.Message{Text: "alice's warble", UserID: alice.ID}
	require.NoError(t, env.db.Create(msg).Error)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.DELETE("/api/messages/:id", middleware.RequireAuth(), env.handler.DeleteMessage)

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/"+strconv.FormatUint(msg.ID, 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "message stays intact")
}

func TestMessageHandler_ToggleLike(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	msg := &models.Message{Text: "likeable", UserID: bob.ID}
	require.NoError(t, env.db.Create(msg).Error)
	idParam := gin.Params{{Key: "id", Value: strconv.FormatUint(msg.ID, 10)}}

	c, w := messageTestContext(http.MethodPost, "/api/messages/1/like", nil, alice.ID)
	c.Params = idParam
	env.handler.ToggleLike(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response["liked"])

	var count int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// A second toggle restores the original edge set
	c, w = messageTestContext(http.MethodPost, "/api/messages/1/like", nil, alice.ID)
	c.Params = idParam
	env.handler.ToggleLike(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response["liked"])

	require.NoError(t, env.db.Model(&models.Like{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMessageHandler_ToggleLike_OwnMessage(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	msg := &models.Message{Text: "self like", UserID: alice.ID}
	require.NoError(t, env.db.Create(msg).Error)

	c, w := messageTestContext(http.MethodPost, "/api/messages/1/like", nil, alice.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(msg.ID, 10)}}
	env.handler.ToggleLike(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestMessageHandler_HomeFeed(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")
	carol := createTestUser(t, env.db, "carol")

	require.NoError(t, env.userService.Follow(alice.ID, bob.ID))

	require.NoError(t, env.db.Create(&models.Message{Text: "from alice", UserID: alice.ID}).Error)
	require.NoError(t, env.db.Create(&models.Message{Text: "from bob", UserID: bob.ID}).Error)
	require.NoError(t, env.db.Create(&models.Message{Text: "from carol", UserID: carol.ID}).Error)

	c, w := messageTestContext(http.MethodGet, "/api/messages/feed", nil, alice.ID)
	env.handler.HomeFeed(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MessageListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Messages, 2)

	texts := make([]string, len(response.Messages))
	for i, m := range response.Messages {
		texts[i] = m.Text
	}
	require.Contains(t, texts, "from alice")
	require.Contains(t, texts, "from bob")
	require.NotContains(t, texts, "from carol")
}

func TestMessageHandler_HomeFeed_CapsAtLimit(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	require.NoError(t, env.userService.Follow(alice.ID, bob.ID))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	total := constants.HomeFeedLimit + 5
	for i := 0; i < total; i++ {
		msg := &models.Message{
			Text:      fmt.Sprintf("warble %d", i),
			UserID:    bob.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, env.db.Create(msg).Error)
	}

	c, w := messageTestContext(http.MethodGet, "/api/messages/feed", nil, alice.ID)
	env.handler.HomeFeed(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MessageListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Messages, constants.HomeFeedLimit)

	// Newest first, with the oldest five falling off the end
	require.Equal(t, fmt.Sprintf("warble %d", total-1), response.Messages[0].Text)
	require.Equal(t, fmt.Sprintf("warble %d", total-constants.HomeFeedLimit), response.Messages[constants.HomeFeedLimit-1].Text)

	texts := make(map[string]bool, len(response.Messages))
	for _, m := range response.Messages {
		texts[m.Text] = true
	}
	for i := 0; i < 5; i++ {
		require.False(t, texts[fmt.Sprintf("warble %d", i)])
	}
}

func TestMessageHandler_GetMessage(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := createTestUser(t, env.db, "alice")

	msg := &models.Message{Text: "readable", UserID: alice.ID}
	require.NoError(t, env.db.Create(msg).Error)

	c, w := messageTestContext(http.MethodGet, "/api/messages/1", nil, alice.ID)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(msg.ID, 10)}}
	env.handler.GetMessage(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message   dto.MessageDTO `json:"message"`
		LikeCount int64          `json:"like_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "readable", response.Message.Text)
	require.Zero(t, response.LikeCount)
}

func TestMessageHandler_GetMessage_NotFound(t *testing.T) {
	env := setupMessageTestEnv(t)

	c, w := messageTestContext(http.MethodGet, "/api/messages/42", nil, 1)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	env.handler.GetMessage(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
