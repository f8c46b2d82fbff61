package nakama

// RpcLogin is the RPC id for the fixed-credential login check.
const RpcLogin = "login"

// RpcQuickMatch is the RPC id clients call to find or create the match.
const RpcQuickMatch = "quick_match"

// MatchNameNaga is the authoritative match handler name registered with Nakama.
const MatchNameNaga = "naga_match"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayTurn       int64 = 1
	OpPassTurn       int64 = 2
	OpUndoTurn       int64 = 3
	OpRequestRestart int64 = 4
	OpVoteRestart    int64 = 5

	// Server -> Client events
	OpPlayerUpdate      int64 = 101
	OpGameStarted       int64 = 102
	OpGameUpdate        int64 = 103
	OpHandUpdate        int64 = 104 // sent privately to the actor
	OpUndoUpdate        int64 = 105
	OpGameWon           int64 = 106
	OpRestartRequested  int64 = 107
	OpRestartVoteUpdate int64 = 108
	OpRestartCancelled  int64 = 109
	OpTurnUnlocked      int64 = 110
)
