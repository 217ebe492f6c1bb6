package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/dto"
	apierrors "github.com/JonOuellette/Twitter-Close-Warbler/internal/errors"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/middleware"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/services"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/utils"
)

// UserHandler coordinates user browsing and follow graph HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users, optionally filtered by the q query parameter.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(services.ListUsersInput{
		Query:    c.Query("q"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// GetUser returns a user's profile with their messages and graph counts.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserProfileDTO(*profile))
}

// ListFollowing returns the users a user follows.
func (h *UserHandler) ListFollowing(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	users, err := h.userService.Following(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": toUserDTOs(users)})
}

// ListFollowers returns the users following a user.
func (h *UserHandler) ListFollowers(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	users, err := h.userService.Followers(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": toUserDTOs(users)})
}

// ListLikes returns the messages a user has liked.
func (h *UserHandler) ListLikes(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	messages, err := h.userService.LikedMessages(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageListResponse(messages))
}

// Follow makes the session user follow the target user.
func (h *UserHandler) Follow(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Follow(actorID, targetID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// Unfollow makes the session user stop following the target user.
func (h *UserHandler) Unfollow(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Unfollow(actorID, targetID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}

func toUserDTOs(users []models.User) []dto.UserDTO {
	items := make([]dto.UserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserDTO(user)
	}
	return items
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCannotFollowSelf):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
