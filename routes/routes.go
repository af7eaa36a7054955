package routes

import (
	"time"

	"github.com/freshfruit/storefront/controllers"
	"github.com/freshfruit/storefront/middleware"
	"github.com/freshfruit/storefront/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Controllers bundles the handlers the router wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	Order   *controllers.OrderController
	Product *controllers.ProductController
}

// Register mounts the API surface. Products, register, login and
// logout are public; me and orders sit behind the auth guard.
func Register(r *gin.Engine, ctrl Controllers, verifier services.TokenVerifier) {
	api := r.Group("/api")

	api.GET("/products", ctrl.Product.GetProducts)
	api.GET("/products/:id", ctrl.Product.GetProductByID)

	// Credential endpoints get a per-IP limiter on top.
	limiter := middleware.NewRateLimiter(rate.Every(time.Minute/100), 50, 10*time.Minute)
	api.POST("/register", limiter.Middleware(), ctrl.Auth.Register)
	api.POST("/login", limiter.Middleware(), ctrl.Auth.Login)
	api.POST("/logout", ctrl.Auth.Logout)

	guarded := api.Group("")
	guarded.Use(middleware.AuthMiddleware(verifier))
	guarded.GET("/me", ctrl.Auth.Me)
	guarded.GET("/orders", ctrl.Order.GetOrders)
	guarded.POST("/orders", ctrl.Order.CreateOrder)
}
