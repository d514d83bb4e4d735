package main

import (
	"log"
	"os"

	"github.com/benbeisheim/classicchess-backend/internal/config"
	"github.com/benbeisheim/classicchess-backend/internal/controller"
	"github.com/benbeisheim/classicchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "classicchess",
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	if cfg.Debug {
		app.Use(logger.New())
	}

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	controller.Register(app, gameService, controller.WebSocketConfig{
		Origins:    cfg.Origins(),
		BufferSize: cfg.WSBufferSize,
	})

	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
