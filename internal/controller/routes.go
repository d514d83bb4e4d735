package controller

import (
	"github.com/benbeisheim/classicchess-backend/internal/middleware"
	"github.com/benbeisheim/classicchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type WebSocketConfig struct {
	Origins    []string
	BufferSize int
}

// Register mounts the REST and WebSocket routes on app.
func Register(app *fiber.App, gameService *service.GameService, wsCfg WebSocketConfig) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	// route-level so the upgrade check can see :gameId
	app.Get("/ws/game/:gameId", middleware.EnsureClientID(), middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  wsCfg.BufferSize,
		WriteBufferSize: wsCfg.BufferSize,
		Origins:         wsCfg.Origins,
	}))

	api := app.Group("/api", middleware.EnsureClientID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/status", gameController.GetStatus)
	gameRoutes.Get("/:gameId/moves", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promote", gameController.Promote)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)
}
