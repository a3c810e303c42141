package routes

import (
	"os"
	"strings"

	"creditbook-backend/config"
	"creditbook-backend/controllers"
	"creditbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/basic-list", controllers.GetCustomersBasic)
			customers.GET("/:id/details", controllers.GetCustomerDetails)
			customers.GET("/:id/payment-history", controllers.GetCustomerPaymentHistory)
			customers.GET("/:id/supply-debt", controllers.GetCustomerSupplyDebt)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/basic-list", controllers.GetProductsBasic)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
		}

		// Purchase routes
		purchases := api.Group("/purchases")
		{
			purchases.POST("", controllers.CreatePurchase)
			purchases.GET("", controllers.GetPurchases)
			purchases.GET("/:id/details", controllers.GetPurchaseDetails)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("", controllers.GetPayments)
			payments.GET("/:id", controllers.GetPayment)
			payments.DELETE("/:id", controllers.DeletePayment)
		}

		// Supply routes
		supplies := api.Group("/supplies")
		{
			supplies.POST("", controllers.CreateSupply)
			supplies.GET("", controllers.GetSupplies)
			supplies.GET("/:id", controllers.GetSupply)
			supplies.POST("/:id/payment", controllers.PaySupply)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
