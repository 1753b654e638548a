package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/logger"
	authRoutes "github.com/Mavton23/donza-sub001/routers/authRoutes"
	courseRoutes "github.com/Mavton23/donza-sub001/routers/courseRoutes"
	superAdminRoutes "github.com/Mavton23/donza-sub001/routers/superAdmin"
	"github.com/Mavton23/donza-sub001/utils"
)

func main() {
	config.LoadConfig()
	log, err := logger.Init(config.AppConfig.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 512 << 20, // media uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Uploaded lesson media
	app.Static(config.AppConfig.MediaBaseURL, config.AppConfig.MediaDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)

	purge, err := utils.InitializePurgeScheduler()
	if err != nil {
		log.Fatal("invalid purge schedule", "schedule", config.AppConfig.PurgeSchedule, "error", err)
	}
	defer purge.Stop()

	log.Info("server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Error("server stopped", "error", err)
	}
}
