package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one entry of the bot profile file.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "random" or "first"
}

// fallbackPrefix marks generated bot IDs used when no profile file is loaded.
const fallbackPrefix = "bot-"

var (
	identitiesMu  sync.RWMutex
	botIdentities []BotIdentity
	botByUserID   map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// ParseIdentities decodes a bot profile file.
func ParseIdentities(data []byte) ([]BotIdentity, error) {
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	for i, identity := range identities {
		if identity.Username == "" {
			return nil, fmt.Errorf("bot identity %d: missing username", i)
		}
	}
	return identities, nil
}

// LoadIdentities loads the bot profiles from path once per process.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		identities, err := ParseIdentities(data)
		if err != nil {
			loadErr = err
			return
		}
		SetIdentities(identities)
	})
	return loadErr
}

// SetIdentities replaces the bot pool.
func SetIdentities(identities []BotIdentity) {
	identitiesMu.Lock()
	defer identitiesMu.Unlock()
	botIdentities = append([]BotIdentity(nil), identities...)
	botByUserID = make(map[string]BotIdentity, len(identities))
	for _, identity := range botIdentities {
		if identity.UserID != "" {
			botByUserID[identity.UserID] = identity
		}
	}
}

// ProvisionBots creates the Nakama accounts for every identity with a device ID
// and tags them with is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identitiesMu.Lock()
		defer identitiesMu.Unlock()
		for i := range botIdentities {
			identity := &botIdentities[i]
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
				"is_bot":     true,
				"difficulty": identity.Difficulty,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}
			botByUserID[userID] = *identity
			logger.Info("ProvisionBots: bot %s (%s) is ready", identity.DisplayName, userID)
		}
	})
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("%s%d", fallbackPrefix, index),
			DisplayName: fmt.Sprintf("AI Player %d", index+1),
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	identity, ok := botByUserID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	if _, ok := botByUserID[userID]; ok {
		return true
	}
	return len(botIdentities) == 0 && strings.HasPrefix(userID, fallbackPrefix)
}
