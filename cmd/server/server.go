package server

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/pinboard/internal/database"
	"github.com/thereayou/pinboard/internal/handlers"
	"github.com/thereayou/pinboard/internal/middleware"
	"github.com/thereayou/pinboard/internal/storage"
	"github.com/thereayou/pinboard/pkg/auth"
	"log"
	"os"
	"time"
)

// tokenDuration — срок жизни сессии, обновления токена нет
const tokenDuration = 15 * 24 * time.Hour

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Media      storage.MediaStore
	AuthH      *handlers.AuthHandler
	UserH      *handlers.UserHandler
	PinH       *handlers.PinHandler
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	media, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	})
	if err != nil {
		log.Fatalf("S3 init failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		tokenDuration,
	)

	blacklist := middleware.NewRedisBlacklist(rdb)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, blacklist)
	userH := handlers.NewUserHandler(dbConn, media)
	pinH := handlers.NewPinHandler(dbConn, dbConn, media)

	router := gin.Default()
	authRequired := middleware.AuthMiddleware(jwtMgr, blacklist, dbConn)
	APIEndpoints(router, authH, userH, pinH, authRequired)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Media:      media,
		AuthH:      authH,
		UserH:      userH,
		PinH:       pinH,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
