package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig carries the table and payout rules loaded at module start.
type GameConfig struct {
	// Rules selects the default turn structure: "play_then_draw" or "classic".
	Rules string `json:"rules"`
	// TableSize is the number of seats a table opens with.
	TableSize int `json:"table_size"`
	// MaxTableSize caps the seats a created table may request.
	MaxTableSize int `json:"max_table_size"`
	// MinPlayersToStart is the occupied-seat threshold for starting a round.
	MinPlayersToStart int `json:"min_players_to_start"`

	WinReward    int64 `json:"win_reward"`
	LosePenalty  int64 `json:"lose_penalty"`
	WelcomeBonus int64 `json:"welcome_bonus"`

	// BotMinDelaySeconds / BotMaxDelaySeconds bound the pause before each
	// automated step, purely for human-perceivable pacing.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds is how long a lone human waits before the
	// table fills with automated seats.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration with defaults filled in for
// anything the file left unset. It is safe to call before LoadGameConfig.
func GetGameConfig() GameConfig {
	c := GameConfig{}
	if cfg != nil {
		c = *cfg
	}

	if c.Rules == "" {
		c.Rules = "play_then_draw"
	}
	if c.TableSize == 0 {
		c.TableSize = 4
	}
	if c.MaxTableSize == 0 {
		c.MaxTableSize = 7
	}
	if c.MinPlayersToStart == 0 {
		c.MinPlayersToStart = 3
	}
	if c.WinReward == 0 {
		c.WinReward = 150
	}
	if c.LosePenalty == 0 {
		c.LosePenalty = 50
	}
	if c.WelcomeBonus == 0 {
		c.WelcomeBonus = 500
	}
	if c.BotMinDelaySeconds == 0 {
		c.BotMinDelaySeconds = 1
	}
	if c.BotMaxDelaySeconds == 0 {
		c.BotMaxDelaySeconds = 3
	}
	if c.BotAutoFillDelaySeconds == 0 {
		c.BotAutoFillDelaySeconds = 5
	}
	return c
}
