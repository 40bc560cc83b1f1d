package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
)

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	manager *Manager
}

func newTestServer(t *testing.T) *testServer {
	manager, err := NewManager(game.NewMemoryGameStore(), nil)
	require.NoError(t, err)
	return &testServer{t: t, router: NewRouter(manager), manager: manager}
}

func (s *testServer) do(method string, path string, body interface{}, out interface{}) int {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (s *testServer) newGame(deck string) gameView {
	var view gameView
	code := s.do(http.MethodPost, "/games", newGameRequest{Deck: deck, Seed: 5}, &view)
	require.Equal(s.t, http.StatusCreated, code)
	return view
}

func TestNewGame(t *testing.T) {
	s := newTestServer(t)
	view := s.newGame("red")

	assert.NotEmpty(t, view.GameID)
	assert.Equal(t, "Red", view.DeckType)
	assert.Len(t, view.Hand, 8)
	assert.Equal(t, 44, view.DeckRemaining)
	assert.Equal(t, 4, view.Hands)
	assert.Equal(t, 4, view.Discards)
	assert.Equal(t, "Small Blind", view.Blind)
	assert.Equal(t, 300, view.ScoreRequired)
	assert.Equal(t, 1, s.manager.Count())

	var got gameView
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/games/"+view.GameID, nil, &got))
	assert.Equal(t, view, got)
}

func TestManagerGamesApplyCardEffects(t *testing.T) {
	s := newTestServer(t)
	g := s.manager.NewGame(game.DeckRed, 5)
	state := g.State()
	state.Player.Money = 5
	hermit, ok := state.Catalog.Find(content.KindTarot, "The Hermit")
	require.True(t, ok)
	state.Player.TarotCards = append(state.Player.TarotCards, content.NewConsumable(hermit))

	out, err := g.UseTarot(0, nil)
	require.NoError(t, err)
	assert.NotContains(t, out.Lines, game.FallbackDescription(hermit))
	assert.Equal(t, 10, state.Player.Money)
}

func TestNewGameRejectsUnknownDeck(t *testing.T) {
	s := newTestServer(t)
	var appErr appError
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games", newGameRequest{Deck: "Purple"}, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, 0, s.manager.Count())
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t)
	var appErr appError
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/games/nope", nil, &appErr))
	assert.Equal(t, "Game state for Game: nope is not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/games/nope/play", cardsRequest{Indices: []int{0}}, nil))
}

func TestDiscardAndPlay(t *testing.T) {
	s := newTestServer(t)
	id := s.newGame("").GameID

	var out outcomeView
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/games/"+id+"/discard", cardsRequest{Indices: []int{0, 1}}, &out))
	assert.Equal(t, []string{"Discarded 2 cards. 2 discards remaining."}, out.Lines)
	assert.Equal(t, 2, out.Game.Discards)
	assert.Len(t, out.Game.Hand, 8)
	assert.Equal(t, 42, out.Game.DeckRemaining)

	var appErr appError
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/discard", cardsRequest{Indices: []int{9}}, &appErr))
	assert.Equal(t, "Invalid card index 9", appErr.Message)

	out = outcomeView{}
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/games/"+id+"/play", cardsRequest{Indices: []int{0}}, &out))
	assert.NotEmpty(t, out.Lines)
	assert.Equal(t, 3, out.Game.Hands)
	assert.Greater(t, out.Game.Score, 0)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	id := s.newGame("").GameID

	req := httptest.NewRequest(http.MethodPost, "/games/"+id+"/play", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSortAndConsumableErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.newGame("").GameID

	var appErr appError
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/sort", sortRequest{By: "color"}, &appErr))
	assert.Equal(t, "Invalid sort type [color]", appErr.Message)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/games/"+id+"/sort", sortRequest{By: "toggle"}, nil))

	appErr = appError{}
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/tarot", useRequest{Index: 0}, &appErr))
	assert.Equal(t, game.ErrMsgInvalidTarot, appErr.Message)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/spectral", useRequest{Index: 0}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/planet", useRequest{Index: 0}, nil))
}

func TestShopIsEmptyBeforeFirstClear(t *testing.T) {
	s := newTestServer(t)
	id := s.newGame("").GameID

	var shop struct {
		Items []shopItemView `json:"items"`
	}
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/games/"+id+"/shop", nil, &shop))
	assert.Empty(t, shop.Items)

	var appErr appError
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/buy", buyRequest{Index: 0}, &appErr))
	assert.Equal(t, game.ErrMsgInvalidShopItem, appErr.Message)
}

func TestRemainingDeck(t *testing.T) {
	s := newTestServer(t)
	id := s.newGame("").GameID

	var deck struct {
		Count int `json:"count"`
	}
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/games/"+id+"/deck", nil, &deck))
	assert.Equal(t, 44, deck.Count)
}

func TestSaveEndAndLoad(t *testing.T) {
	s := newTestServer(t)
	view := s.newGame("yellow")
	id := view.GameID

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/games/"+id+"/save", saveRequest{}, nil))
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/games/"+id+"/save", saveRequest{Slot: "one"}, nil))
	slot, ok := s.manager.Slot(id)
	require.True(t, ok)
	assert.Equal(t, "one", slot)

	var slots struct {
		Slots []string `json:"slots"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/slots", nil, &slots))
	assert.Equal(t, []string{"one"}, slots.Slots)

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/games/"+id, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/games/"+id, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/games/"+id, nil, nil))
	assert.Equal(t, 0, s.manager.Count())

	var loaded gameView
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/slots/one/load", nil, &loaded))
	assert.Equal(t, view, loaded)
	assert.ElementsMatch(t, []string{id}, s.manager.GameIDs())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/slots/two/load", nil, nil))
}

func TestEval(t *testing.T) {
	s := newTestServer(t)

	var view evalView
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/eval", evalRequest{Cards: []string{"Ah", "As", "3c"}}, &view))
	assert.Equal(t, "Pair", view.Hand)
	assert.Equal(t, []string{"Ah", "As"}, view.Scored)
	assert.Equal(t, 76, view.Score)
	assert.NotEmpty(t, view.Trace)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/eval", evalRequest{Cards: []string{"Zz"}}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/eval", evalRequest{}, nil))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.newGame("")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new_games_total")
	assert.Contains(t, w.Body.String(), "active_games_count")
}
