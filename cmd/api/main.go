package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-catalog-api/internal/audit"
	"go-catalog-api/internal/handler"
	"go-catalog-api/internal/middleware"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/service"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/database"
	"go-catalog-api/pkg/logging"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog, err := logging.NewLogger()
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("running migrations", zap.Error(err))
	}

	// 3. Audit feed hub
	hub := ws.NewHub(zlog)
	go hub.Run()

	// 4. Dependency Injection (Wiring Layers)
	recorder := audit.NewRecorder(zlog)

	userRepo := repository.NewUserRepo(db, recorder)
	productRepo := repository.NewProductRepo(db, recorder)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			zlog.Fatal("resolving home directory", zap.Error(err))
		}
		uploadDir = home
	}

	userService := service.NewUserService(userRepo, hub, zlog)
	productService := service.NewProductService(productRepo, userRepo, hub, zlog)
	imageService := service.NewImageService(uploadDir, zlog)

	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, imageService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Catalog API v1.0",
	})

	// Middleware
	app.Use(logger.New())                    // Logging request
	app.Use(recover.New())                   // Panic recovery
	app.Use(cors.New())                      // CORS
	app.Use(middleware.RequestContext(zlog)) // Audit metadata resolution

	// 6. Routes
	app.Get("/user", userHandler.GetUsers)
	app.Post("/user", userHandler.CreateUser)
	app.Get("/user/:id", userHandler.GetUser)
	app.Put("/user/:id", userHandler.UpdateUser)
	app.Delete("/user/:id", userHandler.DeleteUser)

	app.Get("/product", productHandler.GetProducts)
	app.Post("/product", productHandler.CreateProduct)
	app.Get("/product/check-images", productHandler.CheckImages)
	app.Get("/product/images/:filename", productHandler.GetImage)
	app.Get("/product/user/:userId", productHandler.GetProductsByUser)
	app.Get("/product/:id/images", productHandler.GetProductImages)
	app.Get("/product/:id", productHandler.GetProduct)
	app.Put("/product/:id", productHandler.UpdateProduct)
	app.Delete("/product/:id", productHandler.DeleteProduct)

	// WebSocket audit feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
