package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/jobs"
	"Backend-Seabreeze/src/routes"
	"Backend-Seabreeze/src/seeder"
	"Backend-Seabreeze/src/services/storage"
	"Backend-Seabreeze/src/services/triggers/email"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()

	if os.Getenv("SEED_SAMPLE_TEMPLATE") == "true" {
		if err := seeder.SeedSampleTemplate(context.Background()); err != nil {
			log.Println("⚠️ Failed to seed sample template:", err)
		}
	}

	// Background worker: trigger emails, PDF export, dissemination re-runs.
	// Runs whenever Redis is up; without SMTP only the email tasks fail.
	var sender email.MailSender
	if s, err := email.NewSMTPSenderFromEnv(); err != nil {
		log.Println("⚠️ SMTP not configured, trigger emails disabled:", err)
	} else {
		sender = s
	}
	store := storage.NewLocalStorageFromEnv()
	jobs.StartWorker(sender, store)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Static("/files", store.Root)

	routes.InitRoutes(app)

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}

}
