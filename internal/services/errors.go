package services

import "errors"

// Guard failures are reported with a distinct error per failed guard so the
// API can tell a bidder exactly why a request was refused.
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNotAuthorized   = errors.New("not authorized to act on this auction")

	ErrInvalidTimeRange         = errors.New("start time must be before end time")
	ErrStartingPriceNotPositive = errors.New("starting price must be positive")

	ErrNotPendingApproval = errors.New("auction is not pending approval")
	ErrNotRejectable      = errors.New("only pending approval or scheduled auctions can be rejected")
	ErrReasonRequired     = errors.New("a non-empty rejection reason is required")
	ErrNotEditable        = errors.New("only pending approval or scheduled auctions without bids can be edited")
	ErrNotDeletable       = errors.New("only pending approval or scheduled auctions can be deleted")
	ErrHasBids            = errors.New("auction already has bids")
	ErrPriceChangeTooLate = errors.New("starting price can only change while pending approval or scheduled")
	ErrInvalidStatus      = errors.New("unrecognized auction status")

	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionNotStarted = errors.New("auction has not started yet")
	ErrAuctionOver       = errors.New("auction has ended")
	ErrSelfBid           = errors.New("sellers cannot bid on their own auction")
	ErrBidTooLow         = errors.New("bid must be strictly greater than the current price")
)
