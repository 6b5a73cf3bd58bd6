package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid is one entry in an auction's append-only bid ledger. Bids are never
// updated; they are deleted only as a cascade when a pre-activation auction
// is removed.
type Bid struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AuctionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_bids_auction_amount,priority:1" json:"auction_id"`
	BidderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"bidder_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null;index:idx_bids_auction_amount,priority:2,sort:desc" json:"amount"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Bid) TableName() string {
	return "bids"
}

// PlaceBidRequest is the payload for bidding on an auction
type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
