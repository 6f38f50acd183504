package market

import "github.com/ethereum/go-ethereum/common"

// Activity type identifiers for published events.
const (
	EventAssigned     = "assign"
	EventTransferred  = "transfer"
	EventOffered      = "offer"
	EventOfferRevoked = "cancel_offer"
	EventBidEntered   = "bid"
	EventBidWithdrawn = "cancel_bid"
	EventSale         = "sale"
)

// Event describes a committed state change for external indexing.
// Events never feed back into ledger state.
type Event struct {
	Type    string
	AssetID uint32
	From    common.Address
	To      common.Address
	Value   uint64
}

// EventSink receives events after the originating operation has
// committed and the ledger lock has been released.
type EventSink func(Event)
