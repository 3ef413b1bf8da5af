package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bean-buzz/beanbuzz-backend/handlers"
	"github.com/bean-buzz/beanbuzz-backend/middleware"
	"github.com/bean-buzz/beanbuzz-backend/models"
)

// SetupRoutes registers the full route table.
func SetupRoutes(
	r *gin.Engine,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	menuHandler *handlers.MenuHandler,
	orderHandler *handlers.OrderHandler,
	reviewHandler *handlers.ReviewHandler,
) {
	// ── User accounts ──────────────────────────────────────────────
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/protectedRoute", auth.RequireAuth(), authHandler.Protected)
	r.POST("/request-password-reset", authHandler.RequestPasswordReset)
	r.POST("/reset-password", authHandler.ResetPassword)

	// ── Menu catalog ───────────────────────────────────────────────
	menu := r.Group("/menu")
	{
		menu.GET("", menuHandler.List)
		menu.GET("/:categoryName", menuHandler.ListByCategory)
		menu.GET("/item/:itemId", menuHandler.GetItem)

		// Catalog writes are admin only, gated by exact role match
		menuAdmin := menu.Group("/item")
		menuAdmin.Use(auth.RequireAuth(), middleware.RoleExactly(models.RoleAdmin))
		{
			menuAdmin.POST("", menuHandler.CreateItem)
			menuAdmin.PUT("/:itemId", menuHandler.UpdateItem)
			menuAdmin.DELETE("/:itemId", menuHandler.DeleteItem)
		}
	}

	// ── Orders ─────────────────────────────────────────────────────
	order := r.Group("/order")
	{
		order.POST("", orderHandler.Create)
		order.GET("/:id", orderHandler.Get)

		// Lifecycle management requires staff or higher in the hierarchy
		staff := order.Group("")
		staff.Use(auth.RequireAuth(), middleware.RoleAtLeast(models.RoleStaff))
		{
			staff.GET("", orderHandler.List)
			staff.PUT("/:id", orderHandler.Update)
			staff.POST("/:id/submit", orderHandler.Submit)
			staff.DELETE("/:id", orderHandler.Delete)
		}
	}

	// ── Reviews ────────────────────────────────────────────────────
	reviews := r.Group("/reviews")
	{
		reviews.GET("", reviewHandler.List)
		reviews.POST("", auth.RequireAuth(), reviewHandler.Create)

		byID := reviews.Group("/:id")
		byID.Use(reviewHandler.ValidateID)
		{
			byID.GET("", reviewHandler.Get)
			byID.PATCH("", reviewHandler.Update)
			byID.DELETE("", reviewHandler.Delete)
		}
	}
}
