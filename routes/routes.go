package routes

import (
	"net/http"
	"time"

	"github.com/DDismyname28/home-portal/handlers"
	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, signin and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", hb.Auth.SignupHandler)
		auth.POST("/signin", hb.Auth.SigninHandler)

		auth.Use(middleware.AuthRequired(hb.UserRepo))
		auth.GET("/me", hb.Auth.MeHandler)
	}

	profile := r.Group("/api/profile")
	{
		profile.Use(middleware.AuthRequired(hb.UserRepo))
		profile.POST("", hb.Auth.UpdateProfileHandler)
	}
}

// RegisterRequestRoutes registers the member-facing request endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthRequired(hb.UserRepo))
		api.GET("/vendors", hb.Request.FindVendorsHandler)

		members := api.Group("")
		members.Use(middleware.RequireRole(models.RoleHomeMember))
		members.GET("", hb.Request.ListRequestsHandler)
		members.POST("", hb.Request.SubmitRequestHandler)
		members.DELETE("/:id", hb.Request.DeleteRequestHandler)
	}
}

// RegisterVendorRoutes registers the provider-facing request endpoints.
func RegisterVendorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vendor/requests")
	{
		api.Use(middleware.AuthRequired(hb.UserRepo))
		api.Use(middleware.RequireRole(models.RoleLocalProvider))
		api.GET("", hb.Vendor.ListAssignedRequestsHandler)
		api.PUT("/:id", hb.Vendor.UpdateRequestStatusHandler)
		api.POST("/:id/notes", hb.Vendor.AddRequestNoteHandler)
	}
}

// RegisterCatalogRoutes registers provider offerings and the public
// provider directory.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	services := r.Group("/api/services")
	{
		services.Use(middleware.AuthRequired(hb.UserRepo))
		services.Use(middleware.RequireRole(models.RoleLocalProvider))
		services.GET("", hb.Catalog.ListServicesHandler)
		services.POST("", hb.Catalog.PublishServiceHandler)
		services.DELETE("/:id", hb.Catalog.RetractServiceHandler)
	}

	r.GET("/api/providers", middleware.AuthRequired(hb.UserRepo), hb.Catalog.ListProvidersHandler)
}

// RegisterReportRoutes registers the dashboard summary endpoint.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.AuthRequired(hb.UserRepo))
		api.GET("", hb.Report.MonthlyReportHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterVendorRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterHealthRoute(r)
}
