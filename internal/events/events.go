package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routing keys on the bidwar event stream. The downstream notification
// service binds to these names.
const (
	KeyAuctionCreated     = "auction.created"
	KeyAuctionApproved    = "auction.approved"
	KeyAuctionRejected    = "auction.rejected"
	KeyAuctionActivated   = "auction.activated"
	KeyAuctionEndedWinner = "auction.ended.winner"
	KeyAuctionEndedNoBids = "auction.ended.nobids"
	KeyBidPlaced          = "bid.placed"
	KeyBidOutbid          = "bid.outbid"
)

// Publisher delivers lifecycle and bid events to the message bus.
// Publishing is fire-and-forget: implementations log and swallow transport
// failures so callers never block on, or fail because of, the bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any)
	Close()
}

type AuctionCreated struct {
	AuctionID     uuid.UUID       `json:"auctionId"`
	SellerID      uuid.UUID       `json:"sellerId"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
}

type AuctionApproved struct {
	AuctionID uuid.UUID `json:"auctionId"`
	SellerID  uuid.UUID `json:"sellerId"`
	AdminID   uuid.UUID `json:"adminId"`
	NewStatus string    `json:"newStatus"`
	Title     string    `json:"title"`
}

type AuctionRejected struct {
	AuctionID uuid.UUID `json:"auctionId"`
	SellerID  uuid.UUID `json:"sellerId"`
	AdminID   uuid.UUID `json:"adminId"`
	Reason    string    `json:"reason"`
	Title     string    `json:"title"`
}

type AuctionActivated struct {
	AuctionID uuid.UUID `json:"auctionId"`
	SellerID  uuid.UUID `json:"sellerId"`
	Title     string    `json:"title"`
	EndTime   time.Time `json:"endTime"`
}

// AuctionEnded is published under auction.ended.winner (winner and final
// price set) or auction.ended.nobids (both zero-valued).
type AuctionEnded struct {
	AuctionID  uuid.UUID       `json:"auctionId"`
	SellerID   uuid.UUID       `json:"sellerId"`
	Title      string          `json:"title"`
	WinnerID   *uuid.UUID      `json:"winnerId,omitempty"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
}

type BidPlaced struct {
	AuctionID    uuid.UUID       `json:"auctionId"`
	AuctionTitle string          `json:"auctionTitle"`
	SellerID     uuid.UUID       `json:"sellerId"`
	BidderID     uuid.UUID       `json:"bidderId"`
	Amount       decimal.Decimal `json:"amount"`
}

type BidOutbid struct {
	AuctionID    uuid.UUID       `json:"auctionId"`
	AuctionTitle string          `json:"auctionTitle"`
	SellerID     uuid.UUID       `json:"sellerId"`
	OutbidUserID uuid.UUID       `json:"outbidUserId"`
	NewBidderID  uuid.UUID       `json:"newBidderId"`
	NewAmount    decimal.Decimal `json:"newAmount"`
}
