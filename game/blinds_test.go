package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/config"
)

func TestBlindProgression(t *testing.T) {
	rules := config.DefaultRules()
	rules.AnteMultiplier = 2
	b := NewBlinds(rules)
	assert.Equal(t, BlindState__SMALL, b.State())
	assert.Equal(t, Blind{Name: "Small Blind", ScoreRequired: 300}, b.Current())

	anteUp, err := b.Clear()
	require.NoError(t, err)
	assert.False(t, anteUp)
	assert.Equal(t, Blind{Name: "Big Blind", ScoreRequired: 1000}, b.Current())

	anteUp, err = b.Clear()
	require.NoError(t, err)
	assert.False(t, anteUp)
	assert.Equal(t, BlindState__BOSS, b.State())
	assert.Equal(t, 2, b.Index())

	anteUp, err = b.Clear()
	require.NoError(t, err)
	assert.True(t, anteUp)
	assert.Equal(t, 2, b.Ante())
	assert.Equal(t, Blind{Name: "Small Blind", ScoreRequired: 600}, b.Current())
}

func TestBlindFailEndsGame(t *testing.T) {
	b := NewBlinds(config.DefaultRules())
	_, err := b.Clear()
	require.NoError(t, err)

	require.NoError(t, b.Fail())
	assert.True(t, b.GameOver())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, "Big Blind", b.Current().Name)

	_, err = b.Clear()
	assert.Error(t, err)
	assert.Error(t, b.Fail())
}

func TestRestoreBlinds(t *testing.T) {
	rules := config.DefaultRules()
	b := restoreBlinds(rules, 2, 3, false)
	assert.Equal(t, BlindState__BOSS, b.State())
	assert.Equal(t, 3, b.Ante())

	over := restoreBlinds(rules, 1, 2, true)
	assert.True(t, over.GameOver())
	assert.Equal(t, 1, over.Index())

	clamped := restoreBlinds(rules, 7, 0, false)
	assert.Equal(t, 0, clamped.Index())
	assert.Equal(t, 1, clamped.Ante())
}
