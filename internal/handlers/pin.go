package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/pinboard/internal/handlers/dto"
	"github.com/thereayou/pinboard/internal/middleware"
	"github.com/thereayou/pinboard/internal/models"
	"github.com/thereayou/pinboard/internal/services"
	"github.com/thereayou/pinboard/internal/storage"
)

type PinHandler struct {
	pins  services.PinStore
	users services.UserStore
	media storage.MediaStore
}

func NewPinHandler(pins services.PinStore, users services.UserStore, media storage.MediaStore) *PinHandler {
	return &PinHandler{pins: pins, users: users, media: media}
}

// CreatePin принимает multipart-форму с файлом и создаёт пин
func (h *PinHandler) CreatePin(c *gin.Context) {
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

	pin := &models.Pin{
		Title:     c.PostForm("title"),
		Pin:       c.PostForm("pin"),
		ImageID:   result.ID,
		ImageURL:  result.URL,
		OwnerID:   current.ID,
		CreatedAt: time.Now(),
	}

	if err := h.pins.CreatePin(pin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create pin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Pin Created Successfully"})
}

// GetAllPins возвращает все пины, свежие первыми. Пагинации нет намеренно.
func (h *PinHandler) GetAllPins(c *gin.Context) {
	pins, err := h.pins.GetAllPins()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get pins"})
		return
	}

	result := make([]gin.H, len(pins))
	for i := range pins {
		result[i] = formatPinResponse(&pins[i])
	}

	c.JSON(http.StatusOK, result)
}

// GetPin возвращает пин с раскрытым владельцем
func (h *PinHandler) GetPin(c *gin.Context) {
	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No Pin with this id"})
		return
	}

	c.JSON(http.StatusOK, formatPinResponse(pin))
}

// UpdatePin перезаписывает заголовок и текст безусловно, даже пустыми
func (h *PinHandler) UpdatePin(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No Pin with this id"})
		return
	}

	if pin.OwnerID != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	var req dto.UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pin.Title = req.Title
	pin.Pin = req.Pin

	if err := h.pins.UpdatePin(pin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pin updated"})
}

// DeletePin сначала освобождает изображение во внешнем хранилище и только
// после подтверждения удаляет запись, чтобы не осталось осиротевших объектов
func (h *PinHandler) DeletePin(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No Pin with this id"})
		return
	}

	if pin.OwnerID != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	if err := h.media.Release(c.Request.Context(), pin.ImageID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Error deleting image from storage"})
		return
	}

	if err := h.pins.DeletePin(pin.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pin Deleted"})
}

// CommentOnPin добавляет комментарий; имя автора фиксируется на момент
// комментария и позже не пересчитывается
func (h *PinHandler) CommentOnPin(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pin not found"})
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		PinID:     pin.ID,
		UserID:    current.ID,
		Name:      current.Name,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := h.pins.AddComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"comment": formatCommentResponse(comment),
	})
}

// DeleteComment удаляет комментарий; разрешено только его автору
func (h *PinHandler) DeleteComment(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No Pin with this id"})
		return
	}

	commentID := c.Query("commentId")
	if commentID == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Please give comment id"})
		return
	}

	comment, err := h.pins.GetComment(commentID)
	if err != nil || comment.PinID != pin.ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	if comment.UserID != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not owner of this comment"})
		return
	}

	if err := h.pins.DeleteComment(commentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment Deleted"})
}

// SaveOrUnsavePin переключает членство пина в списке сохранённых
func (h *PinHandler) SaveOrUnsavePin(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	user, err := h.users.GetUser(current.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	pin, err := h.pins.GetPin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No Pin with this id"})
		return
	}

	saved, err := h.pins.IsPinSaved(user.ID.String(), pin.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check saved state"})
		return
	}

	if saved {
		if err := h.pins.UnsavePin(user, pin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to unsave pin"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": false, "message": "Pin unsaved"})
		return
	}

	if err := h.pins.SavePin(user, pin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true, "message": "Pin saved"})
}

// GetSavedPins возвращает сохранённые пины с раскрытыми владельцами
func (h *PinHandler) GetSavedPins(c *gin.Context) {
	current := c.MustGet(middleware.UserKey).(*models.User)

	pins, err := h.pins.GetSavedPins(current.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	result := make([]gin.H, len(pins))
	for i := range pins {
		result[i] = formatPinResponse(&pins[i])
	}

	c.JSON(http.StatusOK, result)
}
