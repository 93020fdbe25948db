package api

import (
	"innerlog/internal/auth"
	"innerlog/internal/config"
	"innerlog/internal/cycle"
	"innerlog/internal/profile"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client, profileSvc *profile.Service, cycleSvc *cycle.Service) *gin.Engine {
	r := gin.Default()
	subpath := cfg.Server.Subpath // e.g. "/innerlog" or any custom path, always starts with '/'

	// API routes
	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Setup: only if no users
		group.POST("/setup", SetupHandler())

		// Auth
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

		// Admin: users
		group.GET("/users", auth.AuthMiddleware(cfg, rdb, true), ListUsersHandler())
		group.POST("/users", auth.AuthMiddleware(cfg, rdb, true), CreateUserHandler())

		// User self-service
		group.GET("/users/me", auth.AuthMiddleware(cfg, rdb, false), GetMeHandler())
		group.PUT("/users/me", auth.AuthMiddleware(cfg, rdb, false), UpdateMeHandler())
		group.DELETE("/users/me", auth.AuthMiddleware(cfg, rdb, false), DeleteMeHandler(rdb))

		// Admin: remove an account
		group.DELETE("/users/:id", auth.AuthMiddleware(cfg, rdb, true), DeleteUserByIdHandler(rdb))

		// --- Journal analysis ---
		group.POST("/journal/entries", auth.AuthMiddleware(cfg, rdb, false), AnalyzeEntryHandler(profileSvc))
		group.GET("/journal/profile", auth.AuthMiddleware(cfg, rdb, false), GetProfileHandler(profileSvc))
		group.GET("/journal/context", auth.AuthMiddleware(cfg, rdb, false), ProfileContextHandler(profileSvc))

		// --- Cycle tracking ---
		group.POST("/cycle/logs", auth.AuthMiddleware(cfg, rdb, false), LogDayHandler(cycleSvc))
		group.GET("/cycle/insights", auth.AuthMiddleware(cfg, rdb, false), CycleInsightsHandler(cycleSvc))
		group.GET("/cycle/suggestions", auth.AuthMiddleware(cfg, rdb, false), CycleSuggestionsHandler(cycleSvc))

		// --- Live draft analysis over WebSocket ---
		group.GET("/ws/journal", WSJournalHandler(cfg, profileSvc))

		// --- Online users count ---
		group.GET("/users/online", OnlineUserCountHandler(rdb))
	}
	return r
}
