package main

import (
	"kwa/config"
	"kwa/database"
	authRoutes "kwa/routers/authRoutes"
	courseRoutes "kwa/routers/courseRoutes"
	labRoutes "kwa/routers/labRoutes"
	paymentRoutes "kwa/routers/paymentRoutes"
	"kwa/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	stripe "github.com/stripe/stripe-go/v76"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	stripe.Key = config.AppConfig.StripeSecretKey

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded lab evidence from the public folder
	app.Static("/uploads", "./public/uploads")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	labRoutes.SetupLabRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
