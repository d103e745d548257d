package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anyulbade/aiclases-pricing/internal/middleware"
)

type Handlers struct {
	Pricing  *PricingHandler
	Auth     *AuthHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
}

// RegisterRoutes mounts the /api/v1 routes. Routes that need a session go
// through middleware.RequireSession with verifier.
func RegisterRoutes(router *gin.Engine, h Handlers, verifier middleware.SessionVerifier) {
	api := router.Group("/api/v1")
	{
		api.GET("/regions", h.Pricing.GetRegions)
		api.GET("/packages", h.Pricing.GetPackages)
		api.GET("/courses", h.Pricing.GetCourses)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/payments/webhooks/:provider", h.Checkout.Webhook)
	}

	authed := api.Group("", middleware.RequireSession(verifier))
	{
		authed.GET("/auth/session", h.Auth.Session)
		authed.GET("/payments/countries", h.Pricing.GetCountries)
		authed.POST("/payments/checkout", h.Checkout.CreateCheckout)
		authed.GET("/admin/activity", h.Admin.GetActivity)
		authed.GET("/admin/dashboard", h.Admin.GetDashboard)
	}
}
