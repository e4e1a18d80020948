package app

import (
	"github.com/marquisSam/House-hub/internal/cache"
	"github.com/marquisSam/House-hub/internal/config"
	"github.com/marquisSam/House-hub/internal/handlers"
	"github.com/marquisSam/House-hub/internal/logger"
	"github.com/marquisSam/House-hub/internal/repo"
	"github.com/marquisSam/House-hub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api/v1")

	log := logger.Get()
	store := repo.NewPGStore(db)
	todoCache := cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userSvc := service.NewUserService(store, log)
	todoSvc := service.NewTodoService(store, todoCache, log)
	assignSvc := service.NewAssignmentService(store, todoCache, log)
	eventSvc := service.NewEventService(store, log)

	registerTodoRoutes(api, handlers.NewTodoHandler(todoSvc))
	registerUserRoutes(api, handlers.NewUserHandler(userSvc))
	registerAssignmentRoutes(api, handlers.NewAssignmentHandler(assignSvc))
	registerEventRoutes(api, handlers.NewEventHandler(eventSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "HouseHub API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler) {
	api.POST("/todos", h.Create)
	api.GET("/todos", h.List)
	api.GET("/todos/search", h.Search)
	api.GET("/todos/overdue", h.Overdue)
	api.GET("/todos/:id", h.GetByID)
	api.PUT("/todos/:id", h.Update)
	api.PATCH("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.POST("/users", h.Create)
	api.GET("/users", h.List)
	api.GET("/users/by-email", h.GetByEmail)
	api.GET("/users/:id", h.GetByID)
	api.PUT("/users/:id", h.Update)
	api.PATCH("/users/:id", h.Update)
	api.DELETE("/users/:id", h.Delete)
}

func registerAssignmentRoutes(api *gin.RouterGroup, h *handlers.AssignmentHandler) {
	api.GET("/todos/:id/users", h.UsersForTodo)
	api.POST("/todos/:id/users/:userId", h.Assign)
	api.GET("/todos/:id/users/:userId", h.GetAssignment)
	api.DELETE("/todos/:id/users/:userId", h.Unassign)
	api.GET("/users/:id/todos", h.TodosForUser)
}

func registerEventRoutes(api *gin.RouterGroup, h *handlers.EventHandler) {
	api.POST("/events", h.Create)
	api.GET("/events", h.List)
	api.GET("/events/range", h.Range)
	api.GET("/events/:id", h.GetByID)
	api.PUT("/events/:id", h.Update)
	api.PATCH("/events/:id", h.Update)
	api.DELETE("/events/:id", h.Delete)
}
