package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/middleware"
)

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", HealthCheck)

	api := r.Group("/api")
	api.GET("/status", Status)

	monitor := api.Group("/monitor")
	{
		monitor.GET("/status", h.MonitorStatus)
		monitor.GET("/connections", h.MonitorConnections)
		monitor.GET("/runtime", h.MonitorRuntime)
		monitor.GET("/users", h.MonitorUsers)
		monitor.GET("/profiles", h.MonitorProfilesList)
		monitor.GET("/all", h.MonitorAll)
		monitor.GET("/snapshot", h.MonitorSnapshot)
	}

	auth := middleware.AuthMiddleware()

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/current", auth, h.Current)
	}

	profile := api.Group("/profile")
	{
		profile.GET("/all", h.ListProfiles)
		profile.GET("/handle/:handle", h.ProfileByHandle)
		profile.GET("/user/:user_id", h.ProfileByUser)

		profile.GET("", auth, h.CurrentProfile)
		profile.POST("", auth, h.UpsertProfile)
		profile.DELETE("", auth, h.DeleteProfile)
		profile.POST("/experience", auth, h.AddExperience)
		profile.DELETE("/experience/:exp_id", auth, h.DeleteExperience)
		profile.POST("/education", auth, h.AddEducation)
		profile.DELETE("/education/:edu_id", auth, h.DeleteEducation)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)

		posts.POST("", auth, h.CreatePost)
		posts.DELETE("/:id", auth, h.DeletePost)
		posts.POST("/like/:id", auth, h.LikePost)
		posts.POST("/unlike/:id", auth, h.UnlikePost)
		posts.POST("/comment/:id", auth, h.AddComment)
		posts.DELETE("/comment/:id/:comment_id", auth, h.DeleteComment)
	}
}
