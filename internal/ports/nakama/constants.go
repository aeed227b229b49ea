package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameTarot is the authoritative match handler name registered with Nakama.
	MatchNameTarot = "tarot_match"

	// MatchLabelKey_OpenSeats is the label key quick match filters on.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame  int64 = 1
	OpPlaceBid   int64 = 2
	OpDiscardDog int64 = 3
	OpPlayCard   int64 = 4

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpHandDealt     int64 = 103 // send privately
	OpBidPlaced     int64 = 104
	OpBiddingWon    int64 = 105
	OpRoundVoided   int64 = 106
	OpDogRevealed   int64 = 107 // send privately to the taker
	OpDogDiscarded  int64 = 108
	OpContractFinal int64 = 109
	OpCardPlayed    int64 = 110
	OpTrickWon      int64 = 111
	OpGameEnded     int64 = 112
	OpGameError     int64 = 120
)
