package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pidro/internal/domain"
)

func TestParseGameConfig(t *testing.T) {
	c, err := ParseGameConfig([]byte(`{"winning_score": 41, "auto_rob": true, "bots_enabled": true}`))
	require.NoError(t, err)

	rules := c.Rules()
	assert.Equal(t, 41, rules.WinningScore)
	assert.True(t, rules.AutoRob)
	assert.Equal(t, domain.DefaultInitialHandSize, rules.InitialHandSize)
	assert.Equal(t, domain.DefaultMaxBid, rules.MaxBid)
	assert.True(t, c.BotsEnabled)

	_, err = ParseGameConfig([]byte(`{"min_bid": 9, "max_bid": 7}`))
	assert.Error(t, err)

	_, err = ParseGameConfig([]byte(`{`))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	base := GameConfig{WinningScore: 62}

	c, err := base.ApplyEnv(map[string]string{
		"pidro_winning_score": "31",
		"pidro_auto_rob":      "true",
		"pidro_bots_enabled":  "1",
	})
	require.NoError(t, err)
	assert.Equal(t, 31, c.WinningScore)
	assert.True(t, c.AutoRob)
	assert.True(t, c.BotsEnabled)
	assert.Equal(t, 62, base.WinningScore)

	c, err = base.ApplyEnv(map[string]string{"pidro_winning_score": "lots", "pidro_auto_rob": "maybe"})
	assert.Error(t, err)
	assert.Equal(t, 62, c.WinningScore)
	assert.False(t, c.AutoRob)
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"winning_score": 100}`), 0o600))

	require.NoError(t, LoadGameConfig(path))
	assert.Equal(t, 100, GetGameConfig().Rules().WinningScore)
}
