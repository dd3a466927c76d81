package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sociogram/backend/internal/cache"
	"github.com/sociogram/backend/internal/graph"
	"github.com/sociogram/backend/internal/handlers"
	"github.com/sociogram/backend/internal/interactions"
	"github.com/sociogram/backend/internal/middleware"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/queries"
	"github.com/sociogram/backend/internal/repositories"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// redisClient may be nil, in which case reads skip the cache layer.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, redisClient *redis.Client, jwtSecret string) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Share{},
	)
	if err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	shareRepo := repositories.NewPostgresShareRepository(pgdb)

	// --- Services ---
	engine := interactions.NewEngine(pgdb)
	queryService := queries.NewService(postRepo, commentRepo, likeRepo, shareRepo, userRepo)
	cachedQueries := cache.New(queryService, redisClient)

	// --- Auth routes (issue the tokens the identity middleware verifies) ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- GraphQL endpoint ---
	schema, err := graph.NewSchema(engine, cachedQueries, cachedQueries)
	if err != nil {
		return err
	}
	e.POST("/graphql", graph.HTTPHandler(schema), middleware.IdentityMiddleware(jwtSecret))
	log.Println("GraphQL endpoint configured at /graphql.")

	return nil
}
