// service/game_manager.go
package service

import (
	"errors"
	"log"
	"sync"

	"github.com/benbeisheim/classicchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager is the registry of live games. Each game guards its own state,
// so the manager lock only covers the map.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	log.Printf("created game %s (%d live)", gameID, len(gm.games))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.SimpleMove) (model.MoveResult, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	return game.MakeMove(move)
}

func (gm *GameManager) Promote(gameID string, kind model.PieceType) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Promote(kind)
}

func (gm *GameManager) ResetGame(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Reset(), nil
}

func (gm *GameManager) LegalDestinations(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalDestinations(from)
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID, conn)
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
