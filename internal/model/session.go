package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/classicchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var ErrDuplicateConnection = errors.New("connection already exists")

const (
	writeWait   = 10 * time.Second
	updateQueue = 64
)

// The connections observing a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // clientID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer at a time on any connection
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game serializes access to one game's state: exactly one move is in flight
// per game at a time. Snapshots reach observers through a single publisher
// goroutine in commit order.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	updates     chan GameState
}

func NewGame(id string) *Game {
	g := &Game{
		ID:          id,
		state:       NewGameState(),
		connections: NewGameConnections(),
		updates:     make(chan GameState, updateQueue),
	}
	go g.publish()
	return g
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) MakeMove(move SimpleMove) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.state.TryMove(move.From, move.To)
	if err != nil {
		return MoveResult{}, err
	}
	if result.Outcome == Rejected {
		log.Printf("game %s: rejected %v -> %v: %v", g.ID, move.From, move.To, result.Reason)
		return result, nil
	}

	g.state = result.State
	log.Printf("game %s: %s %v -> %v, status %s", g.ID, result.Outcome, move.From, move.To, g.state.Status.Kind)
	g.broadcast(g.state)
	return result, nil
}

func (g *Game) Promote(kind PieceType) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err := g.state.ChoosePromotion(kind)
	if err != nil {
		return g.state, err
	}
	g.state = next
	log.Printf("game %s: promoted to %s, status %s", g.ID, kind, g.state.Status.Kind)
	g.broadcast(g.state)
	return g.state, nil
}

// Reset starts a new game under the same id.
func (g *Game) Reset() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = NewGameState()
	log.Printf("game %s: reset", g.ID)
	g.broadcast(g.state)
	return g.state
}

func (g *Game) LegalDestinations(from Position) ([]Position, error) {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	return state.LegalDestinations(from)
}

func (g *Game) RegisterConnection(clientID string, conn *websocket.Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		// keep the healthy connection and turn the new one away
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrDuplicateConnection.Error()),
		)
		conn.Close()
		return ErrDuplicateConnection
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for client %s", g.ID, clientID)

	g.mu.Lock()
	g.broadcast(g.state)
	g.mu.Unlock()
	return nil
}

// UnregisterConnection drops clientID only while conn is still its
// registered connection, so a stale socket cannot evict a reconnect.
func (g *Game) UnregisterConnection(clientID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[clientID]; exists && current == conn {
		log.Printf("game %s: unregistering connection for client %s", g.ID, clientID)
		delete(g.connections.connections, clientID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcast queues a snapshot for the publisher. Callers hold g.mu, which
// fixes the queue order to the commit order.
func (g *Game) broadcast(state GameState) {
	g.updates <- state
}

func (g *Game) publish() {
	for state := range g.updates {
		g.broadcastState(state)
	}
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for clientID, conn := range g.connections.connections {
		active[clientID] = conn
	}
	g.connections.mu.RUnlock()

	for clientID, conn := range active {
		if err := g.Send(conn, ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: failed to send state to client %s: %v", g.ID, clientID, err)
			g.UnregisterConnection(clientID, conn)
		}
	}
}

// Send writes one message to a connection of this game.
func (g *Game) Send(conn *websocket.Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
