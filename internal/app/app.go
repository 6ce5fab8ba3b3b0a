package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/trainymonked/reviews/database"
	"github.com/trainymonked/reviews/internal/config"
	"github.com/trainymonked/reviews/internal/handlers"
	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/middleware"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/routes"
	"github.com/trainymonked/reviews/internal/services"
	"github.com/trainymonked/reviews/internal/storage"
	"github.com/trainymonked/reviews/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := database.SeedGroups(gormDB); err != nil {
		logger.Fatal("Group seeding failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	container := initializeServices(cfg, gormDB, store)
	appHandlers := initializeHandlers(cfg, container, store)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
	)

	routes.RegisterRoutes(router, cfg, appHandlers)

	return router
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, store storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	pieceRepo := repositories.NewPieceRepository()
	ratingRepo := repositories.NewRatingRepository()
	reviewRepo := repositories.NewReviewRepository()
	likeRepo := repositories.NewLikeRepository()
	commentRepo := repositories.NewCommentRepository()

	presenter := services.NewReviewPresenter(likeRepo, store, cfg.Storage.PublicRead)

	tokenTTL := time.Duration(cfg.JWT.TTL) * time.Minute

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(gormDB, userRepo, cfg.JWT.Secret, tokenTTL),
		UserService:    services.NewUserService(gormDB, userRepo, presenter, cfg.I18n.SupportedLocales),
		PieceService:   services.NewPieceService(gormDB, pieceRepo, ratingRepo, presenter),
		RatingService:  services.NewRatingService(gormDB, ratingRepo, pieceRepo),
		ReviewService:  services.NewReviewService(gormDB, reviewRepo, pieceRepo, likeRepo, store, presenter),
		LikeService:    services.NewLikeService(gormDB, likeRepo, reviewRepo),
		CommentService: services.NewCommentService(gormDB, commentRepo, reviewRepo, userRepo),
		UploadService:  services.NewUploadService(store, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes, cfg.Storage.PublicRead),
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, store storage.Storage) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService, cfg.JWT.Secret),
		UserHandler:   handlers.NewUserHandler(baseHandler, container.UserService),
		PieceHandler:  handlers.NewPieceHandler(baseHandler, container.PieceService, container.RatingService),
		ReviewHandler: handlers.NewReviewHandler(baseHandler, container.ReviewService, container.LikeService, container.CommentService),
		UploadHandler: handlers.NewUploadHandler(baseHandler, container.UploadService),
		FileHandler:   handlers.NewFileHandler(baseHandler, store),
	}
}
