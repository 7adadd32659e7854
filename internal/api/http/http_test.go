package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nebula-protocol-be/internal/archive"
	"nebula-protocol-be/internal/config"
	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service"
	"nebula-protocol-be/internal/service/dto"
	"nebula-protocol-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
)

func newTestApp(t *testing.T) (*iris.Application, *state.AppState) {
	t.Helper()

	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"), 4)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	registry := content.NewRegistry()
	lobbySvc := service.NewLobbyService(registry, service.LobbyOptions{
		Machine: service.MachineOptions{TickInterval: time.Hour, Recorder: store},
		Seed:    5,
	})
	t.Cleanup(lobbySvc.Close)

	appState := state.NewAppState(
		&config.AppConfig{PublicURL: "https://nebula.example"},
		registry,
		lobbySvc,
		store,
	)

	app := NewApp(appState)
	app.Logger().SetLevel("disable")
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	return app, appState
}

func do(app *iris.Application, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestMaps(t *testing.T) {
	app, appState := newTestApp(t)

	rec := do(app, nethttp.MethodGet, "/api/v1/maps", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("list maps: status %d", rec.Code)
	}

	var maps []mapSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &maps); err != nil {
		t.Fatalf("decode maps: %v", err)
	}
	if len(maps) != len(appState.Registry.ListMaps()) {
		t.Fatalf("want %d maps, got %d", len(appState.Registry.ListMaps()), len(maps))
	}

	if rec := do(app, nethttp.MethodGet, "/api/v1/maps/"+content.MAP_MAGMA, ""); rec.Code != nethttp.StatusOK {
		t.Fatalf("get map: status %d", rec.Code)
	}
	if rec := do(app, nethttp.MethodGet, "/api/v1/maps/atlantis", ""); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("unknown map: status %d", rec.Code)
	}
}

func TestLobbyRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	rec := do(app, nethttp.MethodPost, "/api/v1/lobbies/create", `{"lobbyName":"Deck","playerName":"Ana"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}

	var created dto.CreateLobbyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.LobbyCode == "" || created.HostID == "" {
		t.Fatalf("unexpected create response %+v", created)
	}

	rec = do(app, nethttp.MethodGet, "/api/v1/lobbies/"+strings.ToLower(created.LobbyCode), "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("lookup: status %d", rec.Code)
	}

	var sum dto.LobbySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Code != created.LobbyCode || sum.Name != "Deck" {
		t.Fatalf("unexpected summary %+v", sum)
	}

	rec = do(app, nethttp.MethodGet, "/api/v1/lobbies/"+created.LobbyCode+"/qrcode", "")
	if rec.Code != nethttp.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "image/png") {
		t.Fatalf("qrcode: status %d type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	if rec := do(app, nethttp.MethodGet, "/api/v1/lobbies/NOPE42", ""); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("missing lobby: status %d", rec.Code)
	}
	if rec := do(app, nethttp.MethodPost, "/api/v1/lobbies/create", `{"mapId":"atlantis"}`); rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("unknown map: status %d", rec.Code)
	}
}

func TestMatchesAndSchema(t *testing.T) {
	app, _ := newTestApp(t)

	if rec := do(app, nethttp.MethodGet, "/api/v1/matches", ""); rec.Code != nethttp.StatusOK {
		t.Fatalf("list matches: status %d", rec.Code)
	}
	if rec := do(app, nethttp.MethodGet, "/api/v1/matches/unknown", ""); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("missing match: status %d", rec.Code)
	}

	rec := do(app, nethttp.MethodGet, "/api/v1/mods/schema", "")
	if rec.Code != nethttp.StatusOK || !strings.Contains(rec.Body.String(), "properties") {
		t.Fatalf("mod schema: status %d body %s", rec.Code, rec.Body.String())
	}
}

func readUntil(t *testing.T, conn *websocket.Conn, respType string) service.ResponseWrapper {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var resp service.ResponseWrapper
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("waiting for %s: %v", respType, err)
		}
		if resp.RespType == respType {
			return resp
		}
	}
}

func TestJoinOverWebsocket(t *testing.T) {
	app, appState := newTestApp(t)

	srv := httptest.NewServer(app)
	defer srv.Close()

	created, err := appState.LobbySvc.CreateLobby(dto.CreateLobbyRequest{LobbyName: "Deck"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/join"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	join := `{"type":"JOIN_LOBBY","payload":{"code":"` + created.LobbyCode + `","playerName":"Bo"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(join)); err != nil {
		t.Fatalf("send join: %v", err)
	}

	resp := readUntil(t, conn, service.RESP_JOIN_LOBBY)
	data, _ := json.Marshal(resp.Data)

	var joined dto.JoinLobbyResponse
	if err := json.Unmarshal(data, &joined); err != nil {
		t.Fatalf("decode join: %v", err)
	}
	if joined.PlayerID == "" || joined.Reconnect {
		t.Fatalf("unexpected join response %+v", joined)
	}

	readUntil(t, conn, service.RESP_SNAPSHOT)

	// 客户端不能驱动时钟
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"TICK","payload":{"dt":1000}}`)); err != nil {
		t.Fatalf("send tick: %v", err)
	}
	readUntil(t, conn, service.RESP_ERROR)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"REQUEST_STATE"}`)); err != nil {
		t.Fatalf("send request state: %v", err)
	}
	readUntil(t, conn, service.RESP_SNAPSHOT)

	sum, err := appState.LobbySvc.Lookup(created.LobbyCode)
	if err != nil || sum.Players != 2 {
		t.Fatalf("lobby should list host and guest, got %+v (%v)", sum, err)
	}
}

func TestJoinOverWebsocket_RejectsUnknownLobby(t *testing.T) {
	app, _ := newTestApp(t)

	srv := httptest.NewServer(app)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/join"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"JOIN_LOBBY","payload":{"code":"NOPE42"}}`)); err != nil {
		t.Fatalf("send join: %v", err)
	}

	resp := readUntil(t, conn, service.RESP_ERROR)
	if resp.ErrMsg == "" {
		t.Fatalf("error response must carry a message")
	}
}
