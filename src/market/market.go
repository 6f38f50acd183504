// Package market implements the ownership ledger and trading state
// machine for a fixed supply of 10,000 uniquely indexed collectibles.
//
// All state lives in memory and is owned exclusively by Market. Every
// operation validates its preconditions before touching any state, so
// a failed call leaves the ledger untouched. Outgoing value transfers
// (push payments) are only ever attempted after all mutations have
// been applied and the ledger lock released; refunds that happen as a
// side effect of someone else's action are always credited to the
// recipient's pending withdrawal balance instead.
package market

import (
	"math/bits"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// TotalSupply is fixed at construction and never changes.
	TotalSupply = 10000

	CollectionName   = "CRYPTOPUNKS"
	CollectionSymbol = "Ͼ"
	ImageHash        = "ac39af4793119ee46bbff351d8cb6b5f23da60222126add4268e261199a2921b"
)

// Treasury performs outgoing value transfers to external identities.
// A transfer may fail and may invoke arbitrary code that calls back
// into the ledger before returning.
type Treasury interface {
	Transfer(to common.Address, amount uint64) error
}

// Offer is a sale listing for one asset. A nil OnlySellTo means
// anyone may buy.
type Offer struct {
	Seller     common.Address
	MinPrice   uint64
	OnlySellTo *common.Address
}

// Bid is the single best outstanding bid for one asset. Value is the
// amount escrowed on behalf of Bidder.
type Bid struct {
	Bidder common.Address
	Value  uint64
}

// Market is the single-instance marketplace ledger.
type Market struct {
	admin    common.Address
	treasury Treasury
	sink     EventSink

	mu        sync.RWMutex
	open      bool // distribution finalized, trading allowed
	remaining uint64
	owners    map[uint32]common.Address
	holdings  map[common.Address]uint64
	offers    map[uint32]Offer
	bids      map[uint32]Bid
	pending   map[common.Address]uint64

	// reserved holds value debited for an in-flight push transfer,
	// still owed to the recipient until the push settles. Credits
	// honor pending+reserved headroom so a failed push can always
	// re-add the debit without overflow.
	reserved map[common.Address]uint64
}

type Option func(*Market)

// WithEventSink registers a sink for committed-state events. The sink
// is invoked outside the ledger lock.
func WithEventSink(sink EventSink) Option {
	return func(m *Market) {
		m.sink = sink
	}
}

// New creates a ledger in the assigning phase with every asset
// unassigned. admin is the only identity allowed to run initial
// distribution; it is fixed for the lifetime of the ledger.
func New(admin common.Address, treasury Treasury, opts ...Option) *Market {
	m := &Market{
		admin:     admin,
		treasury:  treasury,
		remaining: TotalSupply,
		owners:    make(map[uint32]common.Address),
		holdings:  make(map[common.Address]uint64),
		offers:    make(map[uint32]Offer),
		bids:      make(map[uint32]Bid),
		pending:   make(map[common.Address]uint64),
		reserved:  make(map[common.Address]uint64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Market) publish(evts []Event) {
	if m.sink == nil {
		return
	}
	for _, evt := range evts {
		m.sink(evt)
	}
}

// canCredit reports whether amount fits in to's pending balance.
// In-flight reserved value counts against the headroom so a failed
// push transfer can always re-add its debit.
func (m *Market) canCredit(to common.Address, amount uint64) bool {
	sum, carry := bits.Add64(m.pending[to], amount, 0)
	if carry != 0 {
		return false
	}
	_, carry = bits.Add64(sum, m.reserved[to], 0)
	return carry == 0
}

// credit adds amount to pending[to] with overflow checking. Callers
// that credit after mutating other state must verify the credit with
// canCredit before the first mutation.
func (m *Market) credit(to common.Address, amount uint64) error {
	if !m.canCredit(to, amount) {
		return errors.Wrap(ErrInvariantViolation, "pending balance overflow")
	}
	m.pending[to] += amount
	return nil
}

// reserve marks amount as in flight to addr. Callers establish
// pending+reserved+amount headroom before reserving, so re-adding the
// debit after a failed push cannot overflow.
func (m *Market) reserve(addr common.Address, amount uint64) {
	m.reserved[addr] += amount
}

func (m *Market) release(addr common.Address, amount uint64) {
	if m.reserved[addr] <= amount {
		delete(m.reserved, addr)
		return
	}
	m.reserved[addr] -= amount
}

// AssignInitialOwner assigns asset id to identity to during the
// distribution phase. Re-assignment of an already assigned asset is a
// free administrative correction: the previous holder's count drops,
// no value moves, and the remaining-to-assign counter is only touched
// on the asset's first-ever assignment.
func (m *Market) AssignInitialOwner(caller, to common.Address, id uint32) error {
	m.mu.Lock()
	evts, err := m.assignLocked(caller, to, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) assignLocked(caller, to common.Address, id uint32) ([]Event, error) {
	if caller != m.admin {
		return nil, errors.Wrap(ErrAccessDenied, "administrative operation")
	}
	if m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "distribution already finalized")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}

	cur, assigned := m.owners[id]
	if assigned {
		m.decHolding(cur)
	} else {
		m.remaining--
	}
	m.owners[id] = to
	m.holdings[to]++

	return []Event{{Type: EventAssigned, AssetID: id, To: to}}, nil
}

// AssignInitialOwners applies AssignInitialOwner pairwise. The whole
// batch fails with no effect if the slices differ in length or any
// single assignment would fail.
func (m *Market) AssignInitialOwners(caller common.Address, tos []common.Address, ids []uint32) error {
	m.mu.Lock()
	evts, err := m.assignBatchLocked(caller, tos, ids)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) assignBatchLocked(caller common.Address, tos []common.Address, ids []uint32) ([]Event, error) {
	if caller != m.admin {
		return nil, errors.Wrap(ErrAccessDenied, "administrative operation")
	}
	if m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "distribution already finalized")
	}
	if len(tos) != len(ids) {
		return nil, errors.Wrap(ErrInvariantViolation, "owners and asset ids differ in length")
	}
	for _, id := range ids {
		if id >= TotalSupply {
			return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
		}
	}

	evts := make([]Event, 0, len(ids))
	for i, id := range ids {
		cur, assigned := m.owners[id]
		if assigned {
			m.decHolding(cur)
		} else {
			m.remaining--
		}
		m.owners[id] = tos[i]
		m.holdings[tos[i]]++
		evts = append(evts, Event{Type: EventAssigned, AssetID: id, To: tos[i]})
	}
	return evts, nil
}

// FinalizeDistribution closes the assigning phase and opens trading.
// One-shot: a second call fails.
func (m *Market) FinalizeDistribution(caller common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.admin {
		return errors.Wrap(ErrAccessDenied, "administrative operation")
	}
	if m.open {
		return errors.Wrap(ErrPhaseViolation, "distribution already finalized")
	}
	m.open = true
	return nil
}

// ClaimAsset assigns a never-assigned asset to the caller at zero
// cost once trading is open. This is the only free path to ownership
// after distribution closes.
func (m *Market) ClaimAsset(caller common.Address, id uint32) error {
	m.mu.Lock()
	evts, err := m.claimLocked(caller, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) claimLocked(caller common.Address, id uint32) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "distribution not finalized")
	}
	if m.remaining == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "no assets remaining to claim")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	if _, assigned := m.owners[id]; assigned {
		return nil, errors.Wrap(ErrInvariantViolation, "asset already owned")
	}

	m.owners[id] = caller
	m.holdings[caller]++
	m.remaining--

	return []Event{{Type: EventAssigned, AssetID: id, To: caller}}, nil
}

// TransferAsset moves ownership of id from the caller to identity to
// without payment. Any sale offer on the asset is cleared; a bid held
// by the recipient is cancelled and refunded to their pending
// balance.
func (m *Market) TransferAsset(caller, to common.Address, id uint32) error {
	m.mu.Lock()
	evts, err := m.transferLocked(caller, to, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) transferLocked(caller, to common.Address, id uint32) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	if owner, assigned := m.owners[id]; !assigned || owner != caller {
		return nil, errors.Wrap(ErrAccessDenied, "caller does not own asset")
	}
	if refund := m.acquireRefundLocked(id, to); refund > 0 && !m.canCredit(to, refund) {
		return nil, errors.Wrap(ErrInvariantViolation, "bid refund would overflow pending balance")
	}

	m.owners[id] = to
	m.decHolding(caller)
	m.holdings[to]++

	evts := []Event{{Type: EventTransferred, AssetID: id, From: caller, To: to}}
	return append(evts, m.afterOwnerChangeLocked(id, to)...), nil
}

// acquireRefundLocked returns the escrow owed back to newOwner when
// ownership of id moves to them, zero when they hold no bid on it.
func (m *Market) acquireRefundLocked(id uint32, newOwner common.Address) uint64 {
	bid, ok := m.bids[id]
	if !ok || bid.Bidder != newOwner {
		return 0
	}
	return bid.Value
}

// afterOwnerChangeLocked applies the uniform post-transfer cleanup:
// the asset's offer is cleared unconditionally and a bid held by the
// new owner is cancelled with its escrow refunded via pending
// balance. Callers verify the refund with canCredit before the first
// mutation, so the credit here cannot fail.
func (m *Market) afterOwnerChangeLocked(id uint32, newOwner common.Address) []Event {
	delete(m.offers, id)

	bid, ok := m.bids[id]
	if !ok || bid.Bidder != newOwner {
		return nil
	}
	m.pending[newOwner] += bid.Value
	delete(m.bids, id)
	return []Event{{Type: EventBidWithdrawn, AssetID: id, From: newOwner, Value: bid.Value}}
}

// OfferForSale lists asset id at minPrice. A non-nil onlySellTo
// restricts the buyer. Overwrites any prior offer.
func (m *Market) OfferForSale(caller common.Address, id uint32, minPrice uint64, onlySellTo *common.Address) error {
	m.mu.Lock()
	evts, err := m.offerLocked(caller, id, minPrice, onlySellTo)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) offerLocked(caller common.Address, id uint32, minPrice uint64, onlySellTo *common.Address) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	if owner, assigned := m.owners[id]; !assigned || owner != caller {
		return nil, errors.Wrap(ErrAccessDenied, "caller does not own asset")
	}

	var restricted *common.Address
	if onlySellTo != nil {
		to := *onlySellTo
		restricted = &to
	}
	m.offers[id] = Offer{Seller: caller, MinPrice: minPrice, OnlySellTo: restricted}

	evt := Event{Type: EventOffered, AssetID: id, From: caller, Value: minPrice}
	if restricted != nil {
		evt.To = *restricted
	}
	return []Event{evt}, nil
}

// RevokeOffer takes asset id off the market. Idempotent: revoking an
// asset that is not listed succeeds without effect.
func (m *Market) RevokeOffer(caller common.Address, id uint32) error {
	m.mu.Lock()
	evts, err := m.revokeOfferLocked(caller, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) revokeOfferLocked(caller common.Address, id uint32) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	if owner, assigned := m.owners[id]; !assigned || owner != caller {
		return nil, errors.Wrap(ErrAccessDenied, "caller does not own asset")
	}
	if _, ok := m.offers[id]; !ok {
		return nil, nil
	}

	delete(m.offers, id)
	return []Event{{Type: EventOfferRevoked, AssetID: id, From: caller}}, nil
}

// BuyAsset completes the sale of asset id to the caller for value.
// The full attached value, including any overpayment above the offer
// minimum, is credited to the seller's pending balance. A bid the
// buyer held on this asset is cancelled and refunded; a bid from
// anyone else survives the sale untouched.
func (m *Market) BuyAsset(caller common.Address, id uint32, value uint64) error {
	m.mu.Lock()
	evts, err := m.buyLocked(caller, id, value)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) buyLocked(caller common.Address, id uint32, value uint64) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	offer, ok := m.offers[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "asset not for sale")
	}
	if offer.OnlySellTo != nil && *offer.OnlySellTo != caller {
		return nil, errors.Wrap(ErrAccessDenied, "offer restricted to another buyer")
	}
	if value < offer.MinPrice {
		return nil, errors.Wrap(ErrInvariantViolation, "attached value below minimum price")
	}
	seller := offer.Seller
	if owner := m.owners[id]; owner != seller {
		// Offers are cleared on every ownership change, so a live
		// offer from a non-owner is unreachable; guard anyway.
		return nil, errors.Wrap(ErrInvariantViolation, "offer seller no longer owns asset")
	}
	// A bidder never owns the asset they bid on, so the refund target
	// and the seller are distinct accounts and the two credits can be
	// checked independently.
	if !m.canCredit(seller, value) {
		return nil, errors.Wrap(ErrInvariantViolation, "sale proceeds would overflow pending balance")
	}
	if refund := m.acquireRefundLocked(id, caller); refund > 0 && !m.canCredit(caller, refund) {
		return nil, errors.Wrap(ErrInvariantViolation, "bid refund would overflow pending balance")
	}

	m.pending[seller] += value
	m.owners[id] = caller
	m.decHolding(seller)
	m.holdings[caller]++

	evts := []Event{{Type: EventSale, AssetID: id, From: seller, To: caller, Value: value}}
	return append(evts, m.afterOwnerChangeLocked(id, caller)...), nil
}

// EnterBid escrows value as the new best bid on asset id. The bid
// must strictly beat any existing bid, whose escrow is refunded to
// the prior bidder's pending balance.
func (m *Market) EnterBid(caller common.Address, id uint32, value uint64) error {
	m.mu.Lock()
	evts, err := m.enterBidLocked(caller, id, value)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) enterBidLocked(caller common.Address, id uint32, value uint64) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	owner, assigned := m.owners[id]
	if !assigned {
		return nil, errors.Wrap(ErrNotFound, "asset has no owner")
	}
	if owner == caller {
		return nil, errors.Wrap(ErrInvariantViolation, "cannot bid on own asset")
	}
	if value == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "bid value must be positive")
	}
	prior, hasPrior := m.bids[id]
	if hasPrior && value <= prior.Value {
		return nil, errors.Wrap(ErrInvariantViolation, "bid does not beat existing bid")
	}

	if hasPrior {
		if err := m.credit(prior.Bidder, prior.Value); err != nil {
			return nil, err
		}
	}
	m.bids[id] = Bid{Bidder: caller, Value: value}

	return []Event{{Type: EventBidEntered, AssetID: id, From: caller, Value: value}}, nil
}

// WithdrawBid cancels the caller's bid on asset id and pushes the
// escrowed value straight back to them. The push is the terminal
// action of the call: the bid record is removed before the transfer
// is attempted and restored if the transfer fails.
func (m *Market) WithdrawBid(caller common.Address, id uint32) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		m.mu.Unlock()
		return errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	bid, ok := m.bids[id]
	if !ok || bid.Bidder != caller {
		m.mu.Unlock()
		return errors.Wrap(ErrNotFound, "caller has no bid on asset")
	}
	if !m.canCredit(caller, bid.Value) {
		// The escrow must be able to land in the pending balance if
		// the push fails while a new bid takes the slot.
		m.mu.Unlock()
		return errors.Wrap(ErrInvariantViolation, "escrow refund would overflow pending balance")
	}
	delete(m.bids, id)
	m.reserve(caller, bid.Value)
	m.mu.Unlock()

	err := m.treasury.Transfer(caller, bid.Value)

	m.mu.Lock()
	m.release(caller, bid.Value)
	if err != nil {
		// Put the bid back so no value is lost. If a new bid landed
		// while the transfer was in flight, the escrow falls back to
		// the pending balance; the reservation kept that headroom
		// free, so the re-add cannot overflow.
		if _, taken := m.bids[id]; taken {
			m.pending[caller] += bid.Value
		} else {
			m.bids[id] = bid
		}
		m.mu.Unlock()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	m.mu.Unlock()

	m.publish([]Event{{Type: EventBidWithdrawn, AssetID: id, From: caller, Value: bid.Value}})
	return nil
}

// AcceptBid sells asset id to the current bidder. minPrice guards the
// seller against the bid having been replaced since they observed it:
// the operation fails unless the outstanding bid is at least
// minPrice. The bid value is credited to the seller's pending
// balance.
func (m *Market) AcceptBid(caller common.Address, id uint32, minPrice uint64) error {
	m.mu.Lock()
	evts, err := m.acceptBidLocked(caller, id, minPrice)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(evts)
	return nil
}

func (m *Market) acceptBidLocked(caller common.Address, id uint32, minPrice uint64) ([]Event, error) {
	if !m.open {
		return nil, errors.Wrap(ErrPhaseViolation, "trading not open")
	}
	if id >= TotalSupply {
		return nil, errors.Wrap(ErrInvariantViolation, "asset index out of range")
	}
	if owner, assigned := m.owners[id]; !assigned || owner != caller {
		return nil, errors.Wrap(ErrAccessDenied, "caller does not own asset")
	}
	bid, ok := m.bids[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "no bid on asset")
	}
	if bid.Value < minPrice {
		return nil, errors.Wrap(ErrInvariantViolation, "bid below minimum accept price")
	}

	if err := m.credit(caller, bid.Value); err != nil {
		return nil, err
	}
	delete(m.bids, id)
	delete(m.offers, id)
	m.owners[id] = bid.Bidder
	m.decHolding(caller)
	m.holdings[bid.Bidder]++

	return []Event{{Type: EventSale, AssetID: id, From: caller, To: bid.Bidder, Value: bid.Value}}, nil
}

// Withdraw pushes the caller's entire pending balance to them in one
// transfer. A zero balance is a harmless no-op. If the transfer
// fails, the balance is reinstated and the operation reports
// ErrTransferFailed; nothing is ever destroyed by a failed transfer.
func (m *Market) Withdraw(caller common.Address) error {
	m.mu.Lock()
	amount := m.pending[caller]
	if amount == 0 {
		m.mu.Unlock()
		return nil
	}
	delete(m.pending, caller)
	m.reserve(caller, amount)
	m.mu.Unlock()

	err := m.treasury.Transfer(caller, amount)

	m.mu.Lock()
	m.release(caller, amount)
	if err != nil {
		// The reservation kept credits during the transfer window
		// from consuming the debit's headroom, so the re-add cannot
		// overflow.
		m.pending[caller] += amount
		m.mu.Unlock()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	m.mu.Unlock()
	return nil
}

// decHolding decrements without ever going negative; holdings are
// maintained in lock-step with the owner records.
func (m *Market) decHolding(addr common.Address) {
	if m.holdings[addr] <= 1 {
		delete(m.holdings, addr)
		return
	}
	m.holdings[addr]--
}
