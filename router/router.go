package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/controllers"
	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/services"
)

// Requests per second allowed from one client IP across all routes.
const globalRateLimit = 50

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Registered before any route so every handler chain includes it.
	r.Use(middlewares.NewRateLimiter(globalRateLimit, 1).RateLimit())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	// Uploaded images only; nothing else leaves the uploads directory.
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			p := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(p, ".jpg") && !strings.HasSuffix(p, ".jpeg") &&
				!strings.HasSuffix(p, ".png") && !strings.HasSuffix(p, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", middlewares.UploadDir())

	authCtrl := controllers.NewAuthController(db)
	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	contactCtrl := controllers.NewContactController(db)
	paymentCtrl := controllers.NewPaymentController(db, services.NewCheckoutService())
	routeCtrl := controllers.NewRouteController(services.NewTransitService())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(), authCtrl.Me)
		auth.POST("/register",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			authCtrl.Register)
	}

	users := r.Group("/users")
	{
		users.POST("",
			middlewares.NewStrictRateLimiter(),
			middlewares.FileUpload(),
			userCtrl.Register)
		users.GET("",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			userCtrl.GetAllUsers)
		users.GET("/:id",
			middlewares.AuthMiddleware(),
			middlewares.OwnerOrAdmin("id"),
			userCtrl.GetUserByID)
		users.PUT("/:id",
			middlewares.AuthMiddleware(),
			middlewares.OwnerOrAdmin("id"),
			middlewares.FileUpload(),
			userCtrl.UpdateUser)
		users.DELETE("/:id",
			middlewares.AuthMiddleware(),
			middlewares.OwnerOrAdmin("id"),
			userCtrl.DeleteUser)
	}

	menu := r.Group("/menu")
	{
		menu.GET("", menuCtrl.GetMenu)
		menu.GET("/products/:lang", menuCtrl.GetProductsLocalized)
		menu.GET("/:id", menuCtrl.GetProductByID)
		menu.POST("",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			middlewares.FileUpload(),
			menuCtrl.CreateProduct)
		menu.PUT("/:id",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			middlewares.FileUpload(),
			menuCtrl.UpdateProduct)
		menu.DELETE("/:id",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			menuCtrl.DeleteProduct)
	}

	orders := r.Group("/orders", middlewares.AuthMiddleware())
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("/:lang", orderCtrl.GetAllOrders)
		orders.GET("/myorders/:lang", orderCtrl.GetMyOrders)
		orders.PUT("/:id", orderCtrl.UpdateOrder)
	}

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.POST("/reserve", reservationCtrl.CreateReservation)
		reservations.GET("/:id", reservationCtrl.GetReservationsByUserID)
		reservations.DELETE("/:reservationId",
			middlewares.AuthMiddleware(),
			reservationCtrl.DeleteReservation)
	}

	contact := r.Group("/contact")
	{
		contact.POST("", contactCtrl.CreateContact)
		contact.GET("", contactCtrl.GetContacts)
		contact.DELETE("/:id", contactCtrl.DeleteContact)
	}

	r.POST("/payment/create-checkout-session", paymentCtrl.CreateCheckoutSession)

	route := r.Group("/route")
	{
		route.GET("/:olat/:olng/:lat/:lng", routeCtrl.GetRoute)
		route.GET("/legs/:olat/:olng/:lat/:lng", routeCtrl.GetRouteLegs)
	}

	return r
}
