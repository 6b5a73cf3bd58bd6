package services

import (
	"context"
	"errors"

	"bidwar/internal/events"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceBid appends a bid to the auction's ledger and advances the current
// price and highest bidder, all inside the per-auction critical section. A
// bid must be strictly greater than the current price; comparisons are exact
// decimal comparisons. Every guard failure is a distinct error and leaves
// the auction and ledger untouched.
func (s *AuctionService) PlaceBid(ctx context.Context, bidderID uuid.UUID, auctionID uuid.UUID, amount decimal.Decimal) (*models.Bid, *models.Auction, error) {
	var (
		bid     *models.Bid
		updated *models.Auction
	)

	err := s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		if auction.Status != models.AuctionStatusActive {
			return nil, ErrAuctionNotActive
		}

		now := s.now()
		if now.Before(auction.StartTime) {
			return nil, ErrAuctionNotStarted
		}
		if now.After(auction.EndTime) {
			return nil, ErrAuctionOver
		}
		if auction.SellerID == bidderID {
			return nil, ErrSelfBid
		}
		if amount.Cmp(auction.CurrentPrice) <= 0 {
			return nil, ErrBidTooLow
		}

		previousBidder := auction.HighestBidderID

		bid = &models.Bid{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := tx.AppendBid(ctx, bid); err != nil {
			return nil, err
		}

		auction.CurrentPrice = amount
		auction.HighestBidderID = &bidderID
		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}
		updated = auction

		pending := []pendingEvent{{
			key: events.KeyBidPlaced,
			payload: events.BidPlaced{
				AuctionID:    auction.ID,
				AuctionTitle: auction.Title,
				SellerID:     auction.SellerID,
				BidderID:     bidderID,
				Amount:       amount,
			},
		}}
		if previousBidder != nil && *previousBidder != bidderID {
			pending = append(pending, pendingEvent{
				key: events.KeyBidOutbid,
				payload: events.BidOutbid{
					AuctionID:    auction.ID,
					AuctionTitle: auction.Title,
					SellerID:     auction.SellerID,
					OutbidUserID: *previousBidder,
					NewBidderID:  bidderID,
					NewAmount:    amount,
				},
			})
		}
		return pending, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("bid_placed",
		zap.String("auction_id", auctionID.String()),
		zap.String("bidder_id", bidderID.String()),
		zap.String("amount", amount.String()))
	return bid, updated, nil
}

// GetBidsForAuction returns an auction's bid history, newest first
func (s *AuctionService) GetBidsForAuction(ctx context.Context, auctionID uuid.UUID) ([]*models.Bid, error) {
	if _, err := s.repo.GetAuctionByID(ctx, auctionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}
	return s.repo.GetBidsForAuction(ctx, auctionID)
}
