package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/classicchess-backend/internal/middleware"
	"github.com/benbeisheim/classicchess-backend/internal/model"
	"github.com/benbeisheim/classicchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	gameService := service.NewGameService(service.NewGameManager())
	Register(app, gameService, WebSocketConfig{BufferSize: 1024})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data, resp.Header
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, body, _ := do(t, app, http.MethodPost, "/api/game/create", "")
	if code != fiber.StatusOK {
		t.Fatalf("create: status %d: %s", code, body)
	}
	var payload struct {
		GameID string          `json:"game_id"`
		State  model.GameState `json:"state"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if payload.GameID == "" {
		t.Fatalf("expected a game id")
	}
	if payload.State.ToMove != model.White || payload.State.Phase != model.PhaseAwaitingMove {
		t.Fatalf("unexpected initial state %s %s", payload.State.ToMove, payload.State.Phase)
	}
	return payload.GameID
}

func TestCreateGameAssignsClientID(t *testing.T) {
	app := newTestApp()
	code, _, header := do(t, app, http.MethodPost, "/api/game/create", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if header.Get(middleware.ClientIDHeader) == "" {
		t.Fatalf("expected %s header in response", middleware.ClientIDHeader)
	}
}

func TestMakeMoveAccepted(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	code, body, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move",
		`{"from":{"row":6,"col":4},"to":{"row":4,"col":4}}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}

	var resp moveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != model.Accepted || resp.Reason != "" {
		t.Fatalf("expected accepted, got %s %q", resp.Outcome, resp.Reason)
	}
	if resp.State.ToMove != model.Black {
		t.Fatalf("expected black to move, got %s", resp.State.ToMove)
	}
	if resp.State.EnPassantTarget == nil || *resp.State.EnPassantTarget != (model.Position{Row: 4, Col: 4}) {
		t.Fatalf("expected en passant marker on e4, got %v", resp.State.EnPassantTarget)
	}

	code, body, _ = do(t, app, http.MethodGet, "/api/game/"+id, "")
	if code != fiber.StatusOK {
		t.Fatalf("get state: %d", code)
	}
	var state model.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(state.MoveHistory) != 1 || state.LastMove == nil {
		t.Fatalf("expected one recorded move, got %d", len(state.MoveHistory))
	}
}

func TestMakeMoveRejected(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	code, body, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move",
		`{"from":{"row":6,"col":4},"to":{"row":3,"col":4}}`)
	if code != fiber.StatusOK {
		t.Fatalf("a rejected move is not an HTTP error, got %d", code)
	}
	var resp moveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != model.Rejected || resp.Reason != model.ErrIllegalMove.Error() {
		t.Fatalf("expected illegal move rejection, got %s %q", resp.Outcome, resp.Reason)
	}
	if resp.State.ToMove != model.White {
		t.Fatalf("turn must not pass on rejection")
	}
}

func TestMakeMoveBadInput(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"off the board", `{"from":{"row":8,"col":4},"to":{"row":4,"col":4}}`, fiber.StatusBadRequest},
		{"negative column", `{"from":{"row":6,"col":4},"to":{"row":4,"col":-1}}`, fiber.StatusBadRequest},
		{"malformed body", `{"from":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move", tt.body)
			if code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, code, body)
			}
		})
	}
}

func TestLegalMovesQuery(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	code, body, _ := do(t, app, http.MethodGet, "/api/game/"+id+"/moves?row=6&col=4", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}
	var resp destinationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.Position{{Row: 4, Col: 4}, {Row: 5, Col: 4}}
	if len(resp.Destinations) != len(want) {
		t.Fatalf("got %v want %v", resp.Destinations, want)
	}
	for i := range want {
		if resp.Destinations[i] != want[i] {
			t.Fatalf("got %v want %v", resp.Destinations, want)
		}
	}

	code, body, _ = do(t, app, http.MethodGet, "/api/game/"+id+"/moves?row=1&col=4", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Destinations == nil || len(resp.Destinations) != 0 {
		t.Fatalf("the opponent's pawn has no destinations now, got %v", resp.Destinations)
	}

	if code, _, _ := do(t, app, http.MethodGet, "/api/game/"+id+"/moves", ""); code != fiber.StatusBadRequest {
		t.Fatalf("missing square: expected 400, got %d", code)
	}
}

func TestStatusAfterFoolsMate(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	moves := []string{
		`{"from":{"row":6,"col":5},"to":{"row":5,"col":5}}`,
		`{"from":{"row":1,"col":4},"to":{"row":3,"col":4}}`,
		`{"from":{"row":6,"col":6},"to":{"row":4,"col":6}}`,
		`{"from":{"row":0,"col":3},"to":{"row":4,"col":7}}`,
	}
	for _, mv := range moves {
		if code, body, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move", mv); code != fiber.StatusOK {
			t.Fatalf("move %s: %d %s", mv, code, body)
		}
	}

	code, body, _ := do(t, app, http.MethodGet, "/api/game/"+id+"/status", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var status model.Status
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status != (model.Status{Kind: model.Checkmate, Color: model.Black}) {
		t.Fatalf("expected black to win, got %+v", status)
	}

	code, body, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/reset", "")
	if code != fiber.StatusOK {
		t.Fatalf("reset: %d", code)
	}
	var state model.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Status.Kind != model.InProgress || len(state.MoveHistory) != 0 {
		t.Fatalf("reset should start over, got %+v", state.Status)
	}
}

func TestPromoteWithoutPendingPromotion(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	code, body, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/promote", `{"piece":"queen"}`)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", code, body)
	}

	code, body, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/promote", `{"piece":"wizard"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", code, body)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		method, target, body string
	}{
		{http.MethodGet, "/api/game/missing", ""},
		{http.MethodGet, "/api/game/missing/status", ""},
		{http.MethodGet, "/api/game/missing/moves?row=6&col=4", ""},
		{http.MethodPost, "/api/game/missing/move", `{"from":{"row":6,"col":4},"to":{"row":4,"col":4}}`},
		{http.MethodPost, "/api/game/missing/promote", `{"piece":"queen"}`},
		{http.MethodPost, "/api/game/missing/reset", ""},
	}
	for _, tt := range tests {
		code, body, _ := do(t, app, tt.method, tt.target, tt.body)
		if code != fiber.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tt.method, tt.target, code)
		}
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil || payload["error"] == "" {
			t.Fatalf("%s %s: expected an error body, got %s", tt.method, tt.target, body)
		}
	}
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	code, _, _ := do(t, app, http.MethodGet, "/ws/game/"+id, "")
	if code != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", code)
	}
}
