package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/pinboard/internal/models"
)

// formatUserResponse сериализует пользователя; хеш пароля никогда
// не попадает в ответ
func formatUserResponse(user *models.User) gin.H {
	followers := make([]uuid.UUID, len(user.Followers))
	for i, f := range user.Followers {
		followers[i] = f.ID
	}

	following := make([]uuid.UUID, len(user.Following))
	for i, f := range user.Following {
		following[i] = f.ID
	}

	savedPins := make([]uuid.UUID, len(user.SavedPins))
	for i, p := range user.SavedPins {
		savedPins[i] = p.ID
	}

	return gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"bio":            user.Bio,
		"profilePicture": user.ProfilePicture,
		"followers":      followers,
		"following":      following,
		"savedPins":      savedPins,
		"createdAt":      user.CreatedAt,
		"updatedAt":      user.UpdatedAt,
	}
}

func formatOwnerResponse(owner *models.User) gin.H {
	return gin.H{
		"id":             owner.ID,
		"name":           owner.Name,
		"email":          owner.Email,
		"bio":            owner.Bio,
		"profilePicture": owner.ProfilePicture,
	}
}

func formatCommentResponse(comment *models.Comment) gin.H {
	return gin.H{
		"id":        comment.ID,
		"user":      comment.UserID,
		"name":      comment.Name,
		"comment":   comment.Comment,
		"createdAt": comment.CreatedAt,
	}
}

// formatPinResponse сериализует пин; владелец раскрывается в объект,
// только если он был загружен
func formatPinResponse(pin *models.Pin) gin.H {
	comments := make([]gin.H, len(pin.Comments))
	for i := range pin.Comments {
		comments[i] = formatCommentResponse(&pin.Comments[i])
	}

	response := gin.H{
		"id":    pin.ID,
		"title": pin.Title,
		"pin":   pin.Pin,
		"image": gin.H{
			"id":  pin.ImageID,
			"url": pin.ImageURL,
		},
		"owner":     pin.OwnerID,
		"comments":  comments,
		"createdAt": pin.CreatedAt,
		"updatedAt": pin.UpdatedAt,
	}

	if pin.Owner.ID != uuid.Nil {
		response["owner"] = formatOwnerResponse(&pin.Owner)
	}

	return response
}
