package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/pinboard/internal/handlers/dto"
	"github.com/thereayou/pinboard/internal/middleware"
	"github.com/thereayou/pinboard/internal/models"
	"github.com/thereayou/pinboard/internal/services"
	"github.com/thereayou/pinboard/pkg/auth"
)

type AuthHandler struct {
	users      services.UserStore
	jwtManager *auth.JWTManager
	blacklist  middleware.TokenBlacklist
}

func NewAuthHandler(users services.UserStore, jwtMgr *auth.JWTManager, blacklist middleware.TokenBlacklist) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtMgr, blacklist: blacklist}
}

// sendToken выпускает JWT и ставит его httpOnly cookie на весь сайт
func (h *AuthHandler) sendToken(c *gin.Context, userID string) error {
	token, err := h.jwtManager.Generate(userID)
	if err != nil {
		return err
	}
	c.SetCookie(auth.SessionCookie, token, int(h.jwtManager.Duration().Seconds()), "/", "", false, true)
	return nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.users.FindUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already have an account with this email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cannot hash password"})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.users.SaveUser(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to create user"})
		return
	}

	if err := h.sendToken(c, user.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    formatUserResponse(user),
		"message": "User Registered",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No user with this mail"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Wrong password"})
		return
	}

	// Ответ несёт актуальные списки подписок и сохранённых пинов
	user, err = h.users.GetUserWithRelations(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}

	if err := h.sendToken(c, user.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    formatUserResponse(user),
		"message": "Logged in",
	})
}

// Logout стирает cookie и отзывает токен до его естественного истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromCookie(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if exp, err := h.jwtManager.Expiry(rawToken); err == nil {
		h.blacklist.Add(c.Request.Context(), rawToken, time.Until(exp))
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logged Out Successfully"})
}
