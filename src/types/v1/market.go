package types

// AssignReq assigns one asset during the distribution phase.
type AssignReq struct {
	Caller  string `json:"caller" binding:"required,eth_addr"`
	To      string `json:"to" binding:"required,eth_addr"`
	AssetID uint32 `json:"asset_id"`
}

// AssignBatchReq assigns assets pairwise: owners[i] gets asset_ids[i].
type AssignBatchReq struct {
	Caller   string   `json:"caller" binding:"required,eth_addr"`
	Owners   []string `json:"owners" binding:"required,dive,eth_addr"`
	AssetIDs []uint32 `json:"asset_ids" binding:"required"`
}

type CallerReq struct {
	Caller string `json:"caller" binding:"required,eth_addr"`
}

type TransferReq struct {
	Caller string `json:"caller" binding:"required,eth_addr"`
	To     string `json:"to" binding:"required,eth_addr"`
}

type OfferReq struct {
	Caller     string `json:"caller" binding:"required,eth_addr"`
	MinPrice   uint64 `json:"min_price"`
	OnlySellTo string `json:"only_sell_to,omitempty" binding:"omitempty,eth_addr"`
}

// ValueReq carries an operation with attached value (buy, bid).
type ValueReq struct {
	Caller string `json:"caller" binding:"required,eth_addr"`
	Value  uint64 `json:"value"`
}

type AcceptBidReq struct {
	Caller   string `json:"caller" binding:"required,eth_addr"`
	MinPrice uint64 `json:"min_price"`
}

type OfferInfo struct {
	Seller     string `json:"seller"`
	MinPrice   uint64 `json:"min_price"`
	OnlySellTo string `json:"only_sell_to,omitempty"`
}

type BidInfo struct {
	Bidder string `json:"bidder"`
	Value  uint64 `json:"value"`
}

// AssetDetail aggregates everything known about one asset.
type AssetDetail struct {
	AssetID uint32     `json:"asset_id"`
	Owner   string     `json:"owner,omitempty"`
	Offer   *OfferInfo `json:"offer,omitempty"`
	Bid     *BidInfo   `json:"bid,omitempty"`
}

// UserDetail aggregates one identity's position in the market.
type UserDetail struct {
	Address      string `json:"address"`
	HoldingCount uint64 `json:"holding_count"`
	Pending      uint64 `json:"pending_withdrawal"`
}

type ActivityInfo struct {
	AssetID      int64  `json:"asset_id"`
	ActivityType string `json:"activity_type"`
	Maker        string `json:"maker"`
	Taker        string `json:"taker,omitempty"`
	Price        string `json:"price"`
	EventTime    int64  `json:"event_time"`
}

type ActivityPage struct {
	Total      int64          `json:"total"`
	Activities []ActivityInfo `json:"activities"`
}
