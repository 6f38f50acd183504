package market

import "github.com/ethereum/go-ethereum/common"

// Stats is a point-in-time snapshot of ledger-wide counters.
type Stats struct {
	TotalSupply  uint64 `json:"total_supply"`
	Remaining    uint64 `json:"remaining_to_assign"`
	TradingOpen  bool   `json:"trading_open"`
	OpenOffers   int    `json:"open_offers"`
	OpenBids     int    `json:"open_bids"`
	EscrowedBids uint64 `json:"escrowed_bid_value"`
	PendingTotal uint64 `json:"pending_withdrawals"`
}

// Admin returns the administrative identity fixed at construction.
func (m *Market) Admin() common.Address {
	return m.admin
}

// Open reports whether distribution has been finalized.
func (m *Market) Open() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open
}

// Remaining returns the count of assets never assigned.
func (m *Market) Remaining() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.remaining
}

// OwnerOf returns the owner of asset id; the second return is false
// when the asset is unassigned or out of range.
func (m *Market) OwnerOf(id uint32) (common.Address, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.owners[id]
	return owner, ok
}

// BalanceOf returns the number of assets held by addr.
func (m *Market) BalanceOf(addr common.Address) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holdings[addr]
}

// PendingOf returns addr's pending withdrawal balance.
func (m *Market) PendingOf(addr common.Address) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending[addr]
}

// OfferOf returns the active offer on asset id, if any.
func (m *Market) OfferOf(id uint32) (Offer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	offer, ok := m.offers[id]
	if !ok {
		return Offer{}, false
	}
	if offer.OnlySellTo != nil {
		to := *offer.OnlySellTo
		offer.OnlySellTo = &to
	}
	return offer, true
}

// BidOf returns the outstanding bid on asset id, if any.
func (m *Market) BidOf(id uint32) (Bid, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bid, ok := m.bids[id]
	return bid, ok
}

// Snapshot returns ledger-wide counters in one consistent read.
func (m *Market) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var escrowed, pendingTotal uint64
	for _, bid := range m.bids {
		escrowed += bid.Value
	}
	for _, amount := range m.pending {
		pendingTotal += amount
	}
	return Stats{
		TotalSupply:  TotalSupply,
		Remaining:    m.remaining,
		TradingOpen:  m.open,
		OpenOffers:   len(m.offers),
		OpenBids:     len(m.bids),
		EscrowedBids: escrowed,
		PendingTotal: pendingTotal,
	}
}
