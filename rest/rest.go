package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
	"voyager.com/roguepoker/util"
)

var restLogger = log.With().Str("logger_name", "game::rest").Logger()

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type newGameRequest struct {
	Deck string `json:"deck"`
	Seed int64  `json:"seed"`
}

type cardsRequest struct {
	Indices []int `json:"indices"`
}

type useRequest struct {
	Index   int   `json:"index"`
	Targets []int `json:"targets"`
}

type sortRequest struct {
	By string `json:"by"`
}

type buyRequest struct {
	Index int `json:"index"`
}

type saveRequest struct {
	Slot string `json:"slot"`
}

type evalRequest struct {
	Cards []string `json:"cards"`
}

type gameView struct {
	GameID        string        `json:"gameId"`
	DeckType      string        `json:"deckType"`
	Ante          int           `json:"ante"`
	Round         int           `json:"round"`
	Blind         string        `json:"blind"`
	ScoreRequired int           `json:"scoreRequired"`
	Score         int           `json:"score"`
	Money         int           `json:"money"`
	Hands         int           `json:"hands"`
	Discards      int           `json:"discards"`
	Hand          []*poker.Card `json:"hand"`
	Jokers        []string      `json:"jokers"`
	Vouchers      []string      `json:"vouchers"`
	TarotCards    []string      `json:"tarotCards"`
	SpectralCards []string      `json:"spectralCards"`
	PlanetCards   []string      `json:"planetCards"`
	DeckRemaining int           `json:"deckRemaining"`
	GameOver      bool          `json:"gameOver"`
}

type outcomeView struct {
	Lines []string `json:"lines"`
	Game  gameView `json:"game"`
}

type shopItemView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

type evalView struct {
	Hand   string   `json:"hand"`
	Scored []string `json:"scored"`
	Chips  float64  `json:"chips"`
	Mult   float64  `json:"mult"`
	Score  int      `json:"score"`
	Trace  []string `json:"trace"`
}

func newGameView(g *game.Game) gameView {
	s := g.State()
	p := s.Player
	blind := s.Blinds.Current()
	v := gameView{
		GameID:        s.GameID,
		DeckType:      string(s.DeckType),
		Ante:          s.Ante(),
		Round:         s.Round,
		Blind:         blind.Name,
		ScoreRequired: blind.ScoreRequired,
		Score:         p.Score,
		Money:         p.Money,
		Hands:         p.Hands,
		Discards:      p.Discards,
		Hand:          p.Hand,
		Jokers:        []string{},
		Vouchers:      p.VoucherNames(),
		TarotCards:    []string{},
		SpectralCards: []string{},
		PlanetCards:   []string{},
		DeckRemaining: s.Deck.Remaining(),
		GameOver:      s.GameOver(),
	}
	for _, j := range p.Jokers {
		v.Jokers = append(v.Jokers, j.String())
	}
	for _, c := range p.TarotCards {
		v.TarotCards = append(v.TarotCards, c.String())
	}
	for _, c := range p.SpectralCards {
		v.SpectralCards = append(v.SpectralCards, c.String())
	}
	for _, c := range p.PlanetCards {
		v.PlanetCards = append(v.PlanetCards, c.String())
	}
	if v.Vouchers == nil {
		v.Vouchers = []string{}
	}
	return v
}

// NewRouter builds the HTTP API over the manager.
func NewRouter(manager *Manager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	h := &handler{manager: manager}

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": manager.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/eval", h.eval)

	r.POST("/games", h.newGame)
	r.GET("/games/:id", h.getGame)
	r.DELETE("/games/:id", h.endGame)
	r.POST("/games/:id/play", h.play)
	r.POST("/games/:id/discard", h.discard)
	r.POST("/games/:id/tarot", h.useTarot)
	r.POST("/games/:id/spectral", h.useSpectral)
	r.POST("/games/:id/planet", h.usePlanet)
	r.POST("/games/:id/sort", h.sort)
	r.GET("/games/:id/deck", h.remainingDeck)
	r.GET("/games/:id/shop", h.shop)
	r.POST("/games/:id/buy", h.buy)
	r.POST("/games/:id/save", h.save)

	r.GET("/slots", h.listSlots)
	r.POST("/slots/:slot/load", h.loadSlot)
	return r
}

// RunRestServer blocks serving the API on addr.
func RunRestServer(manager *Manager, addr string) error {
	restLogger.Info().Msg(fmt.Sprintf("Starting REST server on %s", addr))
	return NewRouter(manager).Run(addr)
}

type handler struct {
	manager *Manager
}

func writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch err.(type) {
	case game.ValidationError:
		code = http.StatusBadRequest
	case game.GameNotFoundError:
		code = http.StatusNotFound
	default:
		restLogger.Error().Msg(fmt.Sprintf("Request %s %s failed. Error: %v", c.Request.Method, c.Request.URL.Path, err))
	}
	c.IndentedJSON(code, appError{
		Code:    code,
		Message: err.Error(),
	})
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		restLogger.Debug().Msg(fmt.Sprintf("Failed to parse request body. Error: %v", err))
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return false
	}
	return true
}

// withOutcome runs op on the game named in the path and answers with its lines and the new state.
func (h *handler) withOutcome(c *gin.Context, op func(g *game.Game) (game.Outcome, error)) {
	var view outcomeView
	err := h.manager.WithGame(c.Param("id"), func(g *game.Game) error {
		outcome, err := op(g)
		if err != nil {
			return err
		}
		view = outcomeView{Lines: outcome.Lines, Game: newGameView(g)}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if view.Lines == nil {
		view.Lines = []string{}
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) newGame(c *gin.Context) {
	var req newGameRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	if req.Deck == "" {
		req.Deck = string(game.DeckBase)
	}
	deck, err := game.ParseDeckType(req.Deck)
	if err != nil {
		writeError(c, game.ValidationError{Msg: err.Error()})
		return
	}
	g := h.manager.NewGame(deck, req.Seed)
	restLogger.Info().Msg(fmt.Sprintf("New game %s is created on the %s deck", g.GameID(), deck))
	c.JSON(http.StatusCreated, newGameView(g))
}

func (h *handler) getGame(c *gin.Context) {
	var view gameView
	err := h.manager.WithGame(c.Param("id"), func(g *game.Game) error {
		view = newGameView(g)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) endGame(c *gin.Context) {
	if err := h.manager.EndGame(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) play(c *gin.Context) {
	var req cardsRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.Play(req.Indices)
	})
}

func (h *handler) discard(c *gin.Context) {
	var req cardsRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.Discard(req.Indices)
	})
}

func (h *handler) useTarot(c *gin.Context) {
	var req useRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.UseTarot(req.Index, req.Targets)
	})
}

func (h *handler) useSpectral(c *gin.Context) {
	var req useRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.UseSpectral(req.Index, req.Targets)
	})
}

func (h *handler) usePlanet(c *gin.Context) {
	var req useRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.UsePlanet(req.Index)
	})
}

func (h *handler) sort(c *gin.Context) {
	var req sortRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		if req.By == "toggle" {
			return g.ToggleSort(), nil
		}
		return g.SortHand(req.By)
	})
}

func (h *handler) remainingDeck(c *gin.Context) {
	var cards []*poker.Card
	err := h.manager.WithGame(c.Param("id"), func(g *game.Game) error {
		cards = g.RemainingDeck()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}

func (h *handler) shop(c *gin.Context) {
	items := []shopItemView{}
	err := h.manager.WithGame(c.Param("id"), func(g *game.Game) error {
		shop := g.Shop()
		if shop == nil {
			return nil
		}
		for _, item := range shop.Items {
			items = append(items, shopItemView{
				Name:        item.Definition.Name,
				Kind:        string(item.Definition.Kind),
				Cost:        item.Cost,
				Description: item.Definition.Description,
			})
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handler) buy(c *gin.Context) {
	var req buyRequest
	if !bind(c, &req) {
		return
	}
	h.withOutcome(c, func(g *game.Game) (game.Outcome, error) {
		return g.Buy(req.Index)
	})
}

func (h *handler) save(c *gin.Context) {
	var req saveRequest
	if !bind(c, &req) {
		return
	}
	if err := h.manager.Save(c.Param("id"), req.Slot); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gameId": c.Param("id"), "slot": req.Slot})
}

func (h *handler) listSlots(c *gin.Context) {
	slots, err := h.manager.Slots()
	if err != nil {
		writeError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *handler) loadSlot(c *gin.Context) {
	g, err := h.manager.Load(c.Param("slot"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameView(g))
}

// eval scores cards without any game state.
func (h *handler) eval(c *gin.Context) {
	var req evalRequest
	if !bind(c, &req) {
		return
	}
	if len(req.Cards) == 0 || len(req.Cards) > 5 {
		writeError(c, game.ValidationError{Msg: "Between 1 and 5 cards are required"})
		return
	}
	cards := make([]*poker.Card, 0, len(req.Cards))
	for _, code := range req.Cards {
		card, err := poker.ParseCard(code)
		if err != nil {
			writeError(c, game.ValidationError{Msg: err.Error()})
			return
		}
		cards = append(cards, card)
	}
	hand, scored := poker.Evaluate(cards)
	result := scoring.Score(hand, scored, nil, scoring.Context{})
	view := evalView{
		Hand:  hand.String(),
		Chips: result.Chips,
		Mult:  result.Mult,
		Score: util.FloorScore(result.Score),
		Trace: result.Trace,
	}
	for _, card := range scored {
		view.Scored = append(view.Scored, card.Code())
	}
	c.JSON(http.StatusOK, view)
}
