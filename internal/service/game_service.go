package service

import (
	"fmt"

	"github.com/benbeisheim/classicchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a fresh game under a new random id.
func (gs *GameService) CreateGame() (string, model.GameState, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetStatus(gameID string) (model.Status, error) {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return model.Status{}, err
	}
	return state.Status, nil
}

func (gs *GameService) HandleMove(gameID string, move model.SimpleMove) (model.MoveResult, error) {
	return gs.gameManager.MakeMove(gameID, move)
}

func (gs *GameService) HandlePromotion(gameID string, piece string) (model.GameState, error) {
	kind, ok := model.ParsePieceType(piece)
	if !ok {
		return model.GameState{}, fmt.Errorf("promote to %q: %w", piece, model.ErrInvalidPromotion)
	}
	return gs.gameManager.Promote(gameID, kind)
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	return gs.gameManager.ResetGame(gameID)
}

func (gs *GameService) LegalDestinations(gameID string, from model.Position) ([]model.Position, error) {
	return gs.gameManager.LegalDestinations(gameID, from)
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}
