package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"

	"productapi/internal/handlers"
	"productapi/internal/services"
	"productapi/internal/versioning"
	"productapi/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("DEFAULT_API_VERSION", "1.0")
	viper.SetDefault("PRODUCT_ID_MIN", 1000)
	viper.SetDefault("PRODUCT_ID_MAX", 9999)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	defaultVersion, err := versioning.Parse(viper.GetString("DEFAULT_API_VERSION"), versioning.V1)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_API_VERSION: %v", err)
	}

	idMin := viper.GetInt("PRODUCT_ID_MIN")
	idMax := viper.GetInt("PRODUCT_ID_MAX")
	if idMin >= idMax {
		log.Fatalf("PRODUCT_ID_MIN (%d) must be below PRODUCT_ID_MAX (%d)", idMin, idMax)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// Event publishing is a demo side channel; the API works without it.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Services ---
	idGenerator := services.NewRandomIDGenerator(idMin, idMax)
	var productService *services.ProductService
	if mqClient != nil {
		productService = services.NewProductService(idGenerator, mqClient)
	} else {
		productService = services.NewProductService(idGenerator, nil)
	}

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService, defaultVersion)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	// --- API Routes ---
	// Versioned and default-version routes both live under /api.
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Demo consumer: logs product.created events published by this process.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for product events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Product Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeProductEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
