package routes

import (
	"drinkmate_backend/internal/handlers/content"
	"drinkmate_backend/internal/handlers/coupon"
	"drinkmate_backend/internal/handlers/order"
	"drinkmate_backend/internal/handlers/product"
	"drinkmate_backend/internal/handlers/user"
	"drinkmate_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)

	// Public catalog
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/categories", product.GetCategories)
	api.GET("/categories/:slug/products", product.GetProductsByCategory)
	api.GET("/bundles", product.GetBundles)
	api.GET("/bundles/:id", product.GetBundleByID)

	// Public content
	api.GET("/blog", content.GetBlogPosts)
	api.GET("/blog/:slug", content.GetBlogPostBySlug)
	api.GET("/recipes", content.GetRecipes)
	api.GET("/recipes/:slug", content.GetRecipeBySlug)
	api.GET("/content/search", content.SearchContent)

	// Public order tracking (order number + e-mail, no account needed)
	api.GET("/track/:orderNumber", order.TrackOrder)

	// Payment webhooks
	api.POST("/webhooks/stripe", order.StripeWebhook)

	// Authenticated
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", user.Me)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.PUT("/cart/update", user.UpdateCartItem)
		auth.DELETE("/cart/remove/:productId", user.RemoveFromCart)
		auth.DELETE("/cart/clear", user.ClearCart)
		auth.POST("/cart/sync", user.SyncCart)
		auth.POST("/cart/coupon", user.ApplyCoupon)
		auth.DELETE("/cart/coupon", user.RemoveCoupon)

		auth.POST("/coupons/validate", coupon.Validate)

		auth.POST("/orders", order.CreateOrder)
		auth.GET("/orders", order.GetMyOrders)
		auth.GET("/orders/:id", order.GetOrderByID)
		auth.POST("/orders/:id/cancel", order.CancelOrder)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.DELETE("/products/:id", product.DeleteProduct)

		admin.POST("/categories", product.CreateCategory)
		admin.PUT("/categories/:id", product.UpdateCategory)
		admin.DELETE("/categories/:id", product.DeleteCategory)

		admin.POST("/bundles", product.CreateBundle)
		admin.PUT("/bundles/:id", product.UpdateBundle)
		admin.DELETE("/bundles/:id", product.DeleteBundle)

		admin.PUT("/inventory/:id", product.UpdateStock)
		admin.GET("/inventory/movements", product.GetStockMovements)
		admin.GET("/inventory/alerts", product.GetStockAlerts)
		admin.GET("/inventory/stats", product.GetInventoryStats)

		admin.POST("/images", product.UploadImage)

		admin.POST("/coupons", coupon.Create)
		admin.GET("/coupons", coupon.GetAll)
		admin.PUT("/coupons/:code", coupon.Update)
		admin.DELETE("/coupons/:code", coupon.Delete)

		admin.GET("/orders", order.GetAllOrders)
		admin.GET("/orders/stats", order.GetOrderStats)
		admin.PUT("/orders/:id/status", order.UpdateOrderStatus)
		admin.PUT("/orders/:id/shipping", order.UpdateShipping)

		admin.POST("/blog", content.CreateBlogPost)
		admin.PUT("/blog/:id", content.UpdateBlogPost)
		admin.DELETE("/blog/:id", content.DeleteBlogPost)

		admin.POST("/recipes", content.CreateRecipe)
		admin.DELETE("/recipes/:id", content.DeleteRecipe)
	}
}
