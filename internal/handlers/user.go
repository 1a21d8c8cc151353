package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/pinboard/internal/handlers/dto"
	"github.com/thereayou/pinboard/internal/middleware"
	"github.com/thereayou/pinboard/internal/models"
	"github.com/thereayou/pinboard/internal/services"
	"github.com/thereayou/pinboard/internal/storage"
)

type UserHandler struct {
	users services.UserStore
	media storage.MediaStore
}

func NewUserHandler(users services.UserStore, media storage.MediaStore) *UserHandler {
	return &UserHandler{users: users, media: media}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	user, err := h.users.GetUserWithRelations(current.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// GetUser возвращает профиль пользователя по id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUserWithRelations(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// UpdateMe обновляет профиль: перезаписываются только непустые поля
func (h *UserHandler) UpdateMe(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.GetUser(current.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.users.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}

	// Ответ несёт актуальные списки подписок и сохранённых пинов
	user, err = h.users.GetUserWithRelations(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    formatUserResponse(user),
	})
}

// UpdateProfileImage загружает файл во внешнее хранилище и сохраняет URL
func (h *UserHandler) UpdateProfileImage(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please upload an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.media.Upload(c.Request.Context(), file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Error uploading image to storage"})
		return
	}

	user, err := h.users.GetUser(current.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user.ProfilePicture = result.URL

	if err := h.users.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Profile image updated",
		"profilePicture": user.ProfilePicture,
	})
}

// FollowUser подписывает или отписывает в зависимости от текущего состояния
func (h *UserHandler) FollowUser(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	target, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No user with this id"})
		return
	}

	if target.ID == current.ID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "you can't follow yourself"})
		return
	}

	following, err := h.users.IsFollowing(current.ID.String(), target.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check follow state"})
		return
	}

	if following {
		if err := h.users.UnfollowUser(current, target); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to unfollow user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User Unfollowed"})
		return
	}

	if err := h.users.FollowUser(current, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User followed"})
}
