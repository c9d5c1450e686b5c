package nakama

import "time"

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNamePidro is the authoritative match handler name registered with Nakama.
	MatchNamePidro = "pidro_match"

	// GameName is advertised in the match label.
	GameName = "pidro"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpBid          int64 = 2
	OpPass         int64 = 3
	OpDeclareTrump int64 = 4
	OpPlayCard     int64 = 5
	OpSelectHand   int64 = 6
	OpUndo         int64 = 7
	OpRedo         int64 = 8

	// Server -> Client
	OpMatchState   int64 = 100
	OpGameEvent    int64 = 101 // may be private
	OpGameError    int64 = 102
	OpLegalActions int64 = 103 // private to the acting seat
)

// Error codes carried by OpGameError.
const (
	ErrCodeBadRequest = 400
	ErrCodeForbidden  = 403
	ErrCodeConflict   = 409
	ErrCodeRule       = 422
	ErrCodeInternal   = 500
)

// Keys of the JSON match label.
const (
	MatchLabelKey_OpenSeats = "open"
	MatchLabelKey_Game      = "game"
	MatchLabelKey_Phase     = "phase"
)

const (
	labelPhaseLobby = "lobby"

	tickRate = 2

	defaultBotAutoFillDelay = 5 // seconds
	defaultBotDelayTicks    = 1

	gameConfigPath     = "data/game_config.json"
	botIdentitiesPath  = "data/bot_identities.json"
	provisionTimeout   = 10 * time.Second
	envBotAutoFillKey  = "pidro_bot_auto_fill_delay_sec"
	envBotDelayTickKey = "pidro_bot_delay_ticks"
)
