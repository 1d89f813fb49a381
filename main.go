package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/brad-b-miller/miller-academy-fundraise/cart"
	"github.com/brad-b-miller/miller-academy-fundraise/catalog"
	"github.com/brad-b-miller/miller-academy-fundraise/clients"
	"github.com/brad-b-miller/miller-academy-fundraise/config"
	"github.com/brad-b-miller/miller-academy-fundraise/handlers"
	"github.com/brad-b-miller/miller-academy-fundraise/models"
	"github.com/brad-b-miller/miller-academy-fundraise/rabbitmq"
)

func main() {
	cfg := config.LoadConfig()

	log.Printf("Starting fundraiser storefront on port %s", cfg.Port)

	// Set Gin mode
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Orders go to the fulfillment webhook unless a queue sink is
	// configured.
	var dispatcher cart.Dispatcher
	switch cfg.OrderSink {
	case "rabbitmq":
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
		if err != nil {
			log.Fatalf("Failed to create RabbitMQ channel pool: %v", err)
		}
		defer pool.Close()
		dispatcher = rabbitmq.NewPublisher(pool, cfg.RabbitMQQueue)
	default:
		dispatcher = clients.NewWebhookClient(cfg.WebhookURL)
	}

	payment := []models.PaymentOption{
		{
			Method:       "zelle",
			QRCodeImage:  cfg.ZelleQRImage,
			Instructions: "Scan this QR code with your Zelle app to make your payment",
		},
		{
			Method:       "venmo",
			QRCodeImage:  cfg.VenmoQRImage,
			Instructions: "Scan this QR code with your Venmo app to make your payment",
		},
	}

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalog.Products())
	cartHandler := handlers.NewCartHandler(catalog.Products(), dispatcher)
	checkoutHandler := handlers.NewCheckoutHandler(cartHandler, payment)

	// Setup router
	router := gin.Default()

	// Routes
	router.GET("/catalog", catalogHandler.ListProducts)
	router.POST("/carts", cartHandler.CreateCart)
	router.GET("/carts/:cartId", cartHandler.GetCart)
	router.POST("/carts/:cartId/items", cartHandler.AdjustItem)
	router.POST("/carts/:cartId/checkout", checkoutHandler.Checkout)

	// Product photos, header and family images, payment QR codes
	router.Static("/images", cfg.ImageDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
