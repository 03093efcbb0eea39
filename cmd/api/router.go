package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
	"yatube/internal/web"
	"yatube/pkg/container"
)

var formMethods = []string{http.MethodGet, http.MethodPost}

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()

	tmpl, err := web.Templates(c.Config.Web.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Security(c.Config.Web.SSL),
		middleware.Authenticate(c.UserService, c.Config.Web.CookieName),
	)

	router.StaticFS("/static", web.StaticFS())
	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupPostRoutes(router, c)

	router.NoRoute(response.NotFound)

	return router, nil
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.Match(formMethods, "/signup/", c.UserHandler.Signup)
		auth.Match(formMethods, "/login/", c.UserHandler.Login)
		auth.Match(formMethods, "/logout/", c.UserHandler.Logout)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/", c.PostHandler.Index)
	router.GET("/group/:slug/", c.PostHandler.GroupPosts)
	router.GET("/profile/:username/", c.PostHandler.Profile)
	router.GET("/posts/:post_id/", c.PostHandler.PostDetail)

	loginRequired := middleware.LoginRequired(c.Config.Web.LoginURL)
	router.Match(formMethods, "/create/", loginRequired, c.PostHandler.PostCreate)
	router.Match(formMethods, "/posts/:post_id/edit/", loginRequired, c.PostHandler.PostEdit)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		} else if stats, err := appCtx.DB.Stats(); err == nil {
			health["pool"] = stats
		}

		// Check session store
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		if dbStatus != "ok" || redisStatus != "ok" {
			health["status"] = "degraded"
			response.ErrorResponse(c, http.StatusServiceUnavailable, "SERVICE_DEGRADED", "one or more dependencies are unavailable", health)
			return
		}
		response.Success(c, http.StatusOK, health)
	}
}
