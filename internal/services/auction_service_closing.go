package services

import (
	"context"
	"errors"

	"bidwar/internal/events"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errSweepSkip marks a sweep candidate whose guard no longer holds, usually
// because a concurrent request already transitioned it. Not an error.
var errSweepSkip = errors.New("sweep guard no longer holds")

// ActivateDueAuctions flips Scheduled auctions whose start time has passed
// to Active. Each auction transitions through the same serialized path as
// bids, and one failure never blocks the rest of the sweep. Returns the
// number of auctions activated.
func (s *AuctionService) ActivateDueAuctions(ctx context.Context) (int, error) {
	ids, err := s.repo.GetDueScheduledAuctionIDs(ctx, s.now())
	if err != nil {
		return 0, err
	}

	activated := 0
	for _, id := range ids {
		if err := s.activateAuction(ctx, id); err != nil {
			if errors.Is(err, errSweepSkip) {
				continue
			}
			s.log.Error("auction_activation_failed",
				zap.String("auction_id", id.String()), zap.Error(err))
			continue
		}
		activated++
	}
	return activated, nil
}

func (s *AuctionService) activateAuction(ctx context.Context, auctionID uuid.UUID) error {
	return s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		// re-check under the lock: the candidate query ran outside it
		if auction.Status != models.AuctionStatusScheduled || auction.StartTime.After(s.now()) {
			return nil, errSweepSkip
		}

		auction.Status = models.AuctionStatusActive
		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}

		s.log.Info("auction_activated", zap.String("auction_id", auction.ID.String()))
		return []pendingEvent{{
			key: events.KeyAuctionActivated,
			payload: events.AuctionActivated{
				AuctionID: auction.ID,
				SellerID:  auction.SellerID,
				Title:     auction.Title,
				EndTime:   auction.EndTime,
			},
		}}, nil
	})
}

// CloseDueAuctions finalizes Active auctions whose end time has passed:
// Sold with the highest bidder as winner, or Ended when nobody bid.
// Returns the number of auctions closed.
func (s *AuctionService) CloseDueAuctions(ctx context.Context) (int, error) {
	ids, err := s.repo.GetDueActiveAuctionIDs(ctx, s.now())
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, id := range ids {
		if err := s.closeAuction(ctx, id); err != nil {
			if errors.Is(err, errSweepSkip) {
				continue
			}
			s.log.Error("auction_close_failed",
				zap.String("auction_id", id.String()), zap.Error(err))
			continue
		}
		closed++
	}
	return closed, nil
}

func (s *AuctionService) closeAuction(ctx context.Context, auctionID uuid.UUID) error {
	return s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		if auction.Status != models.AuctionStatusActive || auction.EndTime.After(s.now()) {
			return nil, errSweepSkip
		}

		ended := events.AuctionEnded{
			AuctionID:  auction.ID,
			SellerID:   auction.SellerID,
			Title:      auction.Title,
			FinalPrice: auction.CurrentPrice,
		}

		var key string
		if auction.HighestBidderID != nil {
			auction.Status = models.AuctionStatusSold
			auction.WinnerID = auction.HighestBidderID
			ended.WinnerID = auction.WinnerID
			key = events.KeyAuctionEndedWinner
			s.log.Info("auction_sold",
				zap.String("auction_id", auction.ID.String()),
				zap.String("winner_id", auction.WinnerID.String()),
				zap.String("final_price", auction.CurrentPrice.String()))
		} else {
			auction.Status = models.AuctionStatusEnded
			key = events.KeyAuctionEndedNoBids
			s.log.Info("auction_ended_no_bids", zap.String("auction_id", auction.ID.String()))
		}

		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}
		return []pendingEvent{{key: key, payload: ended}}, nil
	})
}
