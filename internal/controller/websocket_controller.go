package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/classicchess-backend/internal/model"
	"github.com/benbeisheim/classicchess-backend/internal/service"
	"github.com/benbeisheim/classicchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals("clientID").(string)

	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		log.Printf("ws: %v (game %s)", err, gameID)
		c.Close()
		return
	}

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		log.Printf("ws: failed to register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("ws: read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("ws: parse error: %v", err)
			wsc.sendError(game, c, "malformed message")
			continue
		}

		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			log.Printf("ws: handle error: %v", err)
			wsc.sendError(game, c, err.Error())
			continue
		}
		if reply != nil {
			if err := game.Send(c, *reply); err != nil {
				log.Printf("ws: write error: %v", err)
				break
			}
		}
	}
}

// handleMessage applies one inbound message. State changes reach every
// observer through the game's broadcast; the reply goes to the sender only.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		result, err := wsc.gameService.HandleMove(gameID, move)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoveResult, newMoveResponse(result))
		if err != nil {
			return nil, err
		}
		return &reply, nil

	case ws.MessageTypePromote:
		var req ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandlePromotion(gameID, req.Piece)
		return nil, err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID)
		return nil, err

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(game *model.Game, c *websocket.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := game.Send(c, msg); err != nil {
		log.Printf("ws: failed to send error: %v", err)
	}
}
