package controller

import (
	"errors"

	"github.com/benbeisheim/classicchess-backend/internal/model"
	"github.com/benbeisheim/classicchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type moveResponse struct {
	Outcome model.MoveOutcome `json:"outcome"`
	Reason  string            `json:"reason,omitempty"`
	State   model.GameState   `json:"state"`
}

func newMoveResponse(result model.MoveResult) moveResponse {
	resp := moveResponse{Outcome: result.Outcome, State: result.State}
	if result.Reason != nil {
		resp.Reason = result.Reason.Error()
	}
	return resp
}

type promoteRequest struct {
	Piece string `json:"piece"`
}

type destinationsResponse struct {
	From         model.Position   `json:"from"`
	Destinations []model.Position `json:"destinations"`
}

// errorStatus maps service and engine errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidSquare), errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNoPendingPromotion):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, state, err := gc.gameService.CreateGame()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetStatus(c *fiber.Ctx) error {
	status, err := gc.gameService.GetStatus(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(status)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	result, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(newMoveResponse(result))
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req promoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion body",
		})
	}

	state, err := gc.gameService.HandlePromotion(c.Params("gameId"), req.Piece)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

// LegalMoves answers move-hint queries: GET /:gameId/moves?row=6&col=4
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := model.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}

	dests, err := gc.gameService.LegalDestinations(c.Params("gameId"), from)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(destinationsResponse{From: from, Destinations: dests})
}
