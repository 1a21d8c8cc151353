package server

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/pinboard/internal/handlers"
)

func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, userH *handlers.UserHandler, pinH *handlers.PinHandler, authRequired gin.HandlerFunc) {
	// User endpoints
	user := r.Group("/api/user")
	{
		user.POST("/register", authH.Register)
		user.POST("/login", authH.Login)
		user.GET("/me", authRequired, userH.GetMe)
		user.GET("/logout", authRequired, authH.Logout)
		user.GET("/:id", authRequired, userH.GetUser)
		user.POST("/follow/:id", authRequired, userH.FollowUser)
		user.PUT("/update", authRequired, userH.UpdateMe)
		user.POST("/profile-image", authRequired, userH.UpdateProfileImage)
	}

	// Pin endpoints
	pin := r.Group("/api/pin", authRequired)
	{
		pin.POST("/new", pinH.CreatePin)
		pin.GET("/all", pinH.GetAllPins)
		pin.GET("/savedpins", pinH.GetSavedPins)
		pin.POST("/save/:id", pinH.SaveOrUnsavePin)
		pin.POST("/comment/:id", pinH.CommentOnPin)
		pin.DELETE("/comment/:id", pinH.DeleteComment)
		pin.GET("/:id", pinH.GetPin)
		pin.PUT("/:id", pinH.UpdatePin)
		pin.DELETE("/:id", pinH.DeletePin)
	}
}
