package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shubham7227/ecommerce/controllers"
	"github.com/shubham7227/ecommerce/middleware"
)

// Register wires all application routes. Read-only product routes are
// public; everything touching a user's data requires auth, and admin
// mutations additionally require the admin role.
func Register(r *gin.Engine, jwtSecret []byte,
	products *controllers.ProductController,
	orders *controllers.OrderController,
	brands *controllers.BrandController,
	carts *controllers.CartController,
	auth *controllers.AuthController,
) {
	authed := middleware.Auth(jwtSecret)
	admin := middleware.RequireAdmin()

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", auth.Signup)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", authed, auth.Me)
	}

	productRoutes := r.Group("/products")
	{
		productRoutes.GET("/search", products.Search)
		productRoutes.GET("/featured", products.Featured)
		productRoutes.GET("/bestselling", products.BestSelling)
		productRoutes.GET("/:id", products.GetByID)
		productRoutes.POST("/:id/reviews", authed, products.AddReview)
		productRoutes.GET("", authed, admin, products.GetAll)
		productRoutes.POST("", authed, admin, products.Create)
		productRoutes.PUT("/:id", authed, admin, products.Update)
		productRoutes.DELETE("/:id", authed, admin, products.Delete)
	}

	orderRoutes := r.Group("/orders", authed)
	{
		orderRoutes.POST("", orders.Create)
		orderRoutes.GET("/mine", orders.Mine)
		orderRoutes.GET("/:id", orders.GetByID)
		orderRoutes.GET("", admin, orders.GetAll)
		orderRoutes.PUT("/:id", admin, orders.Update)
		orderRoutes.PATCH("/:id/cancel", admin, orders.Cancel)
	}

	brandRoutes := r.Group("/brands", authed)
	{
		brandRoutes.POST("/add", admin, brands.Create)
		brandRoutes.GET("/:id", brands.GetByID)
		brandRoutes.GET("", brands.GetAll)
		brandRoutes.PUT("/:id", admin, brands.Update)
		brandRoutes.DELETE("/:id", admin, brands.Delete)
	}

	cartRoutes := r.Group("/cart", authed)
	{
		cartRoutes.GET("", carts.Get)
		cartRoutes.POST("/items", carts.AddItem)
		cartRoutes.DELETE("/items/:productId", carts.RemoveItem)
	}
}
