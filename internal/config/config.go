package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"pidro/internal/domain"
)

// GameConfig is the table configuration file. Zero rule fields fall back to
// the engine defaults.
type GameConfig struct {
	WinningScore    int  `json:"winning_score"`
	InitialHandSize int  `json:"initial_hand_size"`
	FinalHandSize   int  `json:"final_hand_size"`
	MinBid          int  `json:"min_bid"`
	MaxBid          int  `json:"max_bid"`
	AutoRob         bool `json:"auto_rob"`
	// BotsEnabled fills empty seats with bots when a match starts.
	BotsEnabled bool `json:"bots_enabled"`
	// BotIdentitiesPath points at the bot profile file; empty uses generated bots.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// ParseGameConfig decodes and validates a configuration document.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Rules().Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &c, nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		cfg, loadErr = ParseGameConfig(data)
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or a default one when
// nothing has been loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return &GameConfig{}
	}
	return cfg
}

// Rules converts the file settings into engine rules.
func (c GameConfig) Rules() domain.Config {
	return domain.Config{
		WinningScore:    c.WinningScore,
		InitialHandSize: c.InitialHandSize,
		FinalHandSize:   c.FinalHandSize,
		MinBid:          c.MinBid,
		MaxBid:          c.MaxBid,
		AutoRob:         c.AutoRob,
	}.WithDefaults()
}

// ApplyEnv overrides settings from pidro_* keys. Unparseable values are
// reported and leave the setting unchanged.
func (c GameConfig) ApplyEnv(env map[string]string) (GameConfig, error) {
	var errs []string
	if v, ok := env["pidro_winning_score"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Sprintf("pidro_winning_score=%q", v))
		} else {
			c.WinningScore = n
		}
	}
	for key, target := range map[string]*bool{
		"pidro_auto_rob":     &c.AutoRob,
		"pidro_bots_enabled": &c.BotsEnabled,
	} {
		v, ok := env[key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q", key, v))
			continue
		}
		*target = b
	}
	if len(errs) > 0 {
		return c, fmt.Errorf("invalid config overrides: %s", strings.Join(errs, ", "))
	}
	return c, nil
}
