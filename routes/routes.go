package routes

import (
	"net/http"
	"time"

	"trylocal/handlers"
	"trylocal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBusinessRoutes registers directory and owner endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		// Public directory endpoints.
		api.POST("/register", hb.BusinessHandler.RegisterHandler)
		api.POST("/login", hb.BusinessHandler.AuthenticateHandler)
		api.GET("", hb.BusinessHandler.SearchHandler)
		api.GET("/:id", hb.BusinessHandler.GetByIDHandler)
		api.GET("/:id/pickup-slots", hb.SlotsHandler.GetPickupSlotsHandler)

		// Endpoints that modify a listing require owner authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthOwnerMiddleware(hb.BusinessRepo))
		protected.PATCH("/me", hb.BusinessHandler.UpdateProfileHandler)
		protected.PUT("/me/hours", hb.BusinessHandler.UpdateHoursHandler)
		protected.POST("/me/photo", hb.StorageHandler.UploadPhotoHandler)
	}
}

// RegisterConnectRoutes registers payment-account lifecycle endpoints.
func RegisterConnectRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/connect")
	{
		api.Use(middleware.JWTAuthOwnerMiddleware(hb.BusinessRepo))
		api.POST("/account", hb.PaymentsHandler.CreateAccountHandler)
		api.POST("/account/sync", hb.PaymentsHandler.SyncAccountStatusHandler)
		api.POST("/onboarding-link", hb.PaymentsHandler.CreateOnboardingLinkHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Try Local Gresham"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBusinessRoutes(r, hb)
	RegisterConnectRoutes(r, hb)
	RegisterHealthRoute(r)
}
