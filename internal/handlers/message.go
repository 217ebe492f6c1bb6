package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/dto"
	apierrors "github.com/JonOuellette/Twitter-Close-Warbler/internal/errors"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/middleware"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/services"
)

// MessageHandler coordinates message and like HTTP handlers.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// CreateMessage posts a new message. The owner is always the session user;
// there is no way to post on another user's behalf.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateMessageRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(services.CreateMessageInput{
		Text:   req.Text,
		UserID: userID,
	})
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}

// GetMessage returns a single message with its author and like count.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	messageID, ok := parseMessageIDParam(c)
	if !ok {
		return
	}

	message, err := h.messageService.GetMessage(messageID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	likeCount, err := h.messageService.LikeCount(messageID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    dto.ToMessageDTO(*message),
		"like_count": likeCount,
	})
}

// DeleteMessage deletes a message owned by the session user.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageID, ok := parseMessageIDParam(c)
	if !ok {
		return
	}

	if err := h.messageService.DeleteMessage(messageID, userID); err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted",
	})
}

// ToggleLike likes or unlikes a message for the session user.
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageID, ok := parseMessageIDParam(c)
	if !ok {
		return
	}

	liked, err := h.messageService.ToggleLike(userID, messageID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// HomeFeed returns the newest messages from the session user and the users
// they follow.
func (h *MessageHandler) HomeFeed(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messages, err := h.messageService.HomeFeed(userID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageListResponse(messages))
}

func parseMessageIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return 0, false
	}
	return id, true
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageTextRequired),
		errors.Is(err, services.ErrMessageTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotMessageOwner):
		apierrors.Forbidden(c, "Access unauthorized")
	case errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
