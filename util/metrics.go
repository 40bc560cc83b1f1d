package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	newGameCounter        prometheus.Counter
	handPlayedCounter     *prometheus.CounterVec
	blindClearedCounter   prometheus.Counter
	gameOverCounter       prometheus.Counter
	effectAppliedCounter  *prometheus.CounterVec
	activeGamesCountGauge prometheus.Gauge
}

func (m *metrics) NewGame() {
	m.newGameCounter.Inc()
}

func (m *metrics) HandPlayed(hand string) {
	m.handPlayedCounter.WithLabelValues(hand).Inc()
}

func (m *metrics) BlindCleared() {
	m.blindClearedCounter.Inc()
}

func (m *metrics) GameOver() {
	m.gameOverCounter.Inc()
}

func (m *metrics) EffectApplied(action string) {
	m.effectAppliedCounter.WithLabelValues(action).Inc()
}

func (m *metrics) SetActiveGamesCount(count int) {
	m.activeGamesCountGauge.Set(float64(count))
}

var Metrics = &metrics{
	newGameCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "new_games_total",
		Help: "Total number of games started",
	}),
	handPlayedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hands_played_total",
		Help: "Total number of hands played by poker hand",
	}, []string{"hand"}),
	blindClearedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "blinds_cleared_total",
		Help: "Total number of blinds cleared",
	}),
	gameOverCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "games_over_total",
		Help: "Total number of games lost",
	}),
	effectAppliedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "effects_applied_total",
		Help: "Total number of effect actions dispatched",
	}, []string{"action"}),
	activeGamesCountGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_games_count",
		Help: "Count of games held by the game manager",
	}),
}
