package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuctionStatus string

const (
	AuctionStatusPendingApproval AuctionStatus = "PENDING_APPROVAL"
	AuctionStatusScheduled       AuctionStatus = "SCHEDULED"
	AuctionStatusActive          AuctionStatus = "ACTIVE"
	AuctionStatusEnded           AuctionStatus = "ENDED"
	AuctionStatusSold            AuctionStatus = "SOLD"
	AuctionStatusCancelled       AuctionStatus = "CANCELLED"
	AuctionStatusRejected        AuctionStatus = "REJECTED"
)

// AllAuctionStatuses is the closed set of recognized statuses. An admin
// status override must name one of these.
var AllAuctionStatuses = []AuctionStatus{
	AuctionStatusPendingApproval,
	AuctionStatusScheduled,
	AuctionStatusActive,
	AuctionStatusEnded,
	AuctionStatusSold,
	AuctionStatusCancelled,
	AuctionStatusRejected,
}

// IsValid reports whether s is a recognized auction status.
func (s AuctionStatus) IsValid() bool {
	for _, known := range AllAuctionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s AuctionStatus) IsTerminal() bool {
	switch s {
	case AuctionStatusEnded, AuctionStatusSold, AuctionStatusCancelled, AuctionStatusRejected:
		return true
	}
	return false
}

type InspectionStatus string

const (
	InspectionNotRequired InspectionStatus = "NOT_REQUIRED"
	InspectionPending     InspectionStatus = "PENDING"
	InspectionDone        InspectionStatus = "DONE"
	InspectionFailed      InspectionStatus = "FAILED"
)

// Auction represents an item listed for timed bidding
type Auction struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string           `gorm:"size:255;not null" json:"title"`
	Description       string           `gorm:"type:text;not null" json:"description"`
	StartingPrice     decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"starting_price"`
	CurrentPrice      decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"current_price"`
	StartTime         time.Time        `gorm:"not null" json:"start_time"`
	EndTime           time.Time        `gorm:"not null;index:idx_auctions_status_end_time,priority:2" json:"end_time"`
	SellerID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"seller_id"`
	HighestBidderID   *uuid.UUID       `gorm:"type:uuid" json:"highest_bidder_id"`
	WinnerID          *uuid.UUID       `gorm:"type:uuid" json:"winner_id"`
	Status            AuctionStatus    `gorm:"size:50;not null;index:idx_auctions_status_end_time,priority:1" json:"status"`
	AdminApproverID   *uuid.UUID       `gorm:"type:uuid" json:"admin_approver_id"`
	ApprovalTimestamp *time.Time       `json:"approval_timestamp"`
	RejectionReason   *string          `gorm:"type:text" json:"rejection_reason"`
	InspectionStatus  InspectionStatus `gorm:"size:50;not null" json:"inspection_status"`
	CreatedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Auction) TableName() string {
	return "auctions"
}

// CreateAuctionRequest is the payload for listing a new item
type CreateAuctionRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	StartingPrice decimal.Decimal `json:"starting_price" binding:"required"`
	StartTime     time.Time       `json:"start_time" binding:"required"`
	EndTime       time.Time       `json:"end_time" binding:"required"`
}

// UpdateAuctionRequest carries the editable fields. Nil means "leave as is".
// Status and RejectionReason are honored only for admin callers.
type UpdateAuctionRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	StartingPrice   *decimal.Decimal `json:"starting_price"`
	StartTime       *time.Time       `json:"start_time"`
	EndTime         *time.Time       `json:"end_time"`
	Status          *AuctionStatus   `json:"status"`
	RejectionReason *string          `json:"rejection_reason"`
}

// RejectAuctionRequest carries the mandatory moderation reason
type RejectAuctionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AuctionListFilter narrows a paginated listing
type AuctionListFilter struct {
	Status   *AuctionStatus
	SellerID *uuid.UUID
	Page     int
	Limit    int
}

// AuctionPage is the paginated listing response shape
type AuctionPage struct {
	Auctions    []*Auction `json:"auctions"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalCount  int64      `json:"totalCount"`
}
