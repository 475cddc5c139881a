package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// registry indexes the pool by user ID once loaded.
type registry struct {
	pool []BotIdentity
	byID map[string]BotIdentity
}

var (
	identities    registry
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var pool []BotIdentity
		if err := json.Unmarshal(data, &pool); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		identities = registry{pool: pool, byID: make(map[string]BotIdentity, len(pool))}
		for _, identity := range pool {
			if identity.UserID != "" {
				identities.byID[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots ensures the bot accounts exist in the Nakama database and
// carry the is_bot metadata so clients can badge them.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range identities.pool {
			identity := &identities.pool[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}

			identities.byID[userID] = *identity
			logger.Info("ProvisionBots: bot %s (%s) ready, difficulty %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
	return nil
}

// GetBotConfig returns the full identity for a bot user ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	identity, ok := identities.byID[userID]
	return identity, ok
}

// GetBotUsername returns the username for a bot ID, or "" if not a bot.
func GetBotUsername(userID string) string {
	return identities.byID[userID].Username
}

// GetBotDisplayName returns the display name for a bot ID, falling back to
// the username, or "" if not a bot.
func GetBotDisplayName(userID string) string {
	identity, ok := identities.byID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// GetBotIdentity returns the pooled identity at the given index. Indices past
// the pool fabricate a placeholder so a table larger than the pool still fills.
func GetBotIdentity(index int) BotIdentity {
	if index >= 0 && index < len(identities.pool) {
		return identities.pool[index]
	}
	return BotIdentity{
		UserID:      fmt.Sprintf("bot-%d", index),
		Username:    fmt.Sprintf("bot_%d", index),
		DisplayName: fmt.Sprintf("AI Player %d", index),
	}
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := identities.byID[userID]
	return ok
}
