package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcCreateMatch is the Nakama RPC id clients call to create a private table with explicit settings.
	RpcCreateMatch = "create_match"

	// MatchNameShowdown is the authoritative match handler name registered with Nakama.
	MatchNameShowdown = "showdown_match"
)

// Op codes for client messages and server events. Payloads are JSON.
const (
	// Client -> Server
	OpStartRound   int64 = 1
	OpSelectCard   int64 = 2
	OpDeselectCard int64 = 3
	OpPlaySelected int64 = 4
	OpDrawCard     int64 = 5
	OpDiscardCard  int64 = 6
	OpDeclareShow  int64 = 7

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpRoundStarted  int64 = 103
	OpHandDealt     int64 = 104 // sent privately
	OpCardsPlayed   int64 = 105
	OpCardDrawn     int64 = 106
	OpCardDiscarded int64 = 107
	OpRoundEnded    int64 = 108
	OpGameError     int64 = 120
)
