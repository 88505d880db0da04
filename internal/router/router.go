package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/handlers"
	"github.com/trackline-dev/trackline/internal/middleware"
	"github.com/trackline-dev/trackline/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/me", handlers.Me)
			users.PUT("/profile", handlers.UpdateProfile)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
		}

		tickets := api.Group("/tickets", middleware.AuthMiddleware())
		{
			tickets.POST("", handlers.CreateTicket)
			tickets.GET("/my", handlers.GetMyTickets)
			tickets.GET("/project/:project_id", handlers.GetTicketsByProject)
			tickets.GET("/:ticket_id", handlers.GetTicket)
			tickets.PUT("/:ticket_id", handlers.UpdateTicket)
			tickets.PUT("/:ticket_id/status", handlers.UpdateTicketStatus)
			tickets.PUT("/:ticket_id/assign", handlers.AssignTicket)
			tickets.DELETE("/:ticket_id", handlers.DeleteTicket)
		}

		comments := api.Group("/comments", middleware.AuthMiddleware())
		{
			comments.POST("", handlers.CreateComment)
			comments.GET("/:ticket_id", handlers.GetComments)
		}
	}

	return r
}
