// Package handlers wires the admin gateway routes: the server-rendered admin
// screens, the admin JSON API and the public feeds.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/middleware"
	"github.com/LangApex/alumni-platform/internal/web"
)

// Deps is everything the router needs.
type Deps struct {
	Service      *admin.Service
	Sessions     Sessions
	Preview      ImageChecker
	Location     *time.Location
	CookieSecure bool
	Logger       *zap.Logger
}

// NewRouter builds the gateway engine.
func NewRouter(d Deps) (*gin.Engine, error) {
	templates, err := web.Templates(d.Location)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(middleware.RequestLogger(d.Logger.Named("http")))
	r.Use(gin.Recovery())

	authHandler := NewAuthHandler(d.Sessions, d.CookieSecure, d.Logger)
	dashboardHandler := NewDashboardHandler(d.Service, d.Logger)
	eventHandler := NewEventHandler(d.Service, d.Location, d.Logger)
	galleryHandler := NewGalleryHandler(d.Service, d.Preview, d.Logger)
	apiHandler := NewAPIHandler(d.Service, d.Logger)
	publicHandler := NewPublicHandler(d.Service, d.Logger)
	requireAdmin := middleware.RequireAdmin(d.Sessions, d.Logger.Named("auth"))

	r.GET("/health", Health)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, middleware.LoginPath)
	})

	r.GET("/admin", authHandler.LoginPage)
	r.POST("/admin/login", authHandler.Login)
	r.POST("/admin/logout", authHandler.Logout)

	pages := r.Group("/admin", requireAdmin)
	{
		pages.GET("/dashboard", dashboardHandler.Page)

		events := pages.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/new", eventHandler.New)
			events.POST("", eventHandler.Create)
			events.GET("/:id/edit", eventHandler.Edit)
			events.POST("/:id", eventHandler.Update)
			events.GET("/:id/delete", eventHandler.ConfirmDelete)
			events.POST("/:id/delete", eventHandler.Delete)
		}

		gallery := pages.Group("/gallery")
		{
			gallery.GET("", galleryHandler.List)
			gallery.GET("/new", galleryHandler.New)
			gallery.GET("/preview", galleryHandler.Preview)
			gallery.POST("", galleryHandler.Create)
			gallery.GET("/:id/edit", galleryHandler.Edit)
			gallery.POST("/:id", galleryHandler.Update)
			gallery.GET("/:id/delete", galleryHandler.ConfirmDelete)
			gallery.POST("/:id/delete", galleryHandler.Delete)
		}
	}

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.APILogin)
			auth.POST("/logout", authHandler.APILogout)
		}

		protected := api.Group("/admin", requireAdmin)
		{
			protected.GET("/dashboard", dashboardHandler.JSON)

			protected.GET("/events", apiHandler.ListEvents)
			protected.POST("/events", apiHandler.CreateEvent)
			protected.GET("/events/:id", apiHandler.GetEvent)
			protected.PATCH("/events/:id", apiHandler.UpdateEvent)
			protected.DELETE("/events/:id", apiHandler.DeleteEvent)

			protected.GET("/gallery", apiHandler.ListGallery)
			protected.POST("/gallery", apiHandler.CreateGalleryItem)
			protected.GET("/gallery/:id", apiHandler.GetGalleryItem)
			protected.PATCH("/gallery/:id", apiHandler.UpdateGalleryItem)
			protected.DELETE("/gallery/:id", apiHandler.DeleteGalleryItem)
		}

		public := api.Group("/public", middleware.PublicCORS())
		{
			public.GET("/events", publicHandler.Events)
			public.OPTIONS("/events", noContent)
			public.GET("/gallery", publicHandler.Gallery)
			public.OPTIONS("/gallery", noContent)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if middleware.IsAPI(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		renderMessage(c, http.StatusNotFound, "Page not found", "There is nothing at this address.", "/admin/dashboard")
	})

	return r, nil
}

// Health reports that the gateway is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
