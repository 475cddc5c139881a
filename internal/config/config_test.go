package config

import "testing"

func TestGetGameConfigDefaults(t *testing.T) {
	// No file loaded: every field falls back to its default.
	c := GetGameConfig()

	if c.Rules != "play_then_draw" {
		t.Fatalf("default rules = %q, want play_then_draw", c.Rules)
	}
	if c.TableSize != 4 {
		t.Fatalf("default table size = %d, want 4", c.TableSize)
	}
	if c.MaxTableSize != 7 {
		t.Fatalf("default max table size = %d, want 7", c.MaxTableSize)
	}
	if c.WinReward != 150 || c.LosePenalty != 50 {
		t.Fatalf("default stakes = +%d/-%d, want +150/-50", c.WinReward, c.LosePenalty)
	}
	if c.WelcomeBonus != 500 {
		t.Fatalf("default welcome bonus = %d, want 500", c.WelcomeBonus)
	}
	if c.BotMinDelaySeconds != 1 || c.BotMaxDelaySeconds != 3 {
		t.Fatalf("default bot delays = %d..%d, want 1..3", c.BotMinDelaySeconds, c.BotMaxDelaySeconds)
	}
}
