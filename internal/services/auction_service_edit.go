package services

import (
	"context"
	"strings"

	"bidwar/internal/auth"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateAuction edits an auction's fields. Owners may edit only while the
// auction is pending approval or scheduled and has no bids. Admins may edit
// at any point and may additionally force a status; that override is an
// intentional moderation escape hatch, and any bids orphaned by it are left
// in the ledger untouched.
func (s *AuctionService) UpdateAuction(ctx context.Context, principal auth.Principal, auctionID uuid.UUID, req *models.UpdateAuctionRequest) (*models.Auction, error) {
	var updated *models.Auction

	err := s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		isOwner := auction.SellerID == principal.UserID
		if !isOwner && !principal.IsAdmin() {
			return nil, ErrNotAuthorized
		}

		preActivation := auction.Status == models.AuctionStatusPendingApproval ||
			auction.Status == models.AuctionStatusScheduled

		if !principal.IsAdmin() {
			if !preActivation {
				return nil, ErrNotEditable
			}
			bidCount, err := tx.CountBidsForAuction(ctx, auction.ID)
			if err != nil {
				return nil, err
			}
			if bidCount > 0 {
				return nil, ErrHasBids
			}
		}

		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			auction.Title = *req.Title
		}
		if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
			auction.Description = *req.Description
		}

		if req.StartingPrice != nil {
			if !preActivation {
				return nil, ErrPriceChangeTooLate
			}
			if !req.StartingPrice.IsPositive() {
				return nil, ErrStartingPriceNotPositive
			}
			auction.StartingPrice = *req.StartingPrice
			// no bids can exist pre-activation, so the current price
			// follows the new starting price
			auction.CurrentPrice = *req.StartingPrice
		}

		if req.StartTime != nil {
			auction.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			auction.EndTime = *req.EndTime
		}
		if !auction.StartTime.Before(auction.EndTime) {
			return nil, ErrInvalidTimeRange
		}

		if principal.IsAdmin() && req.Status != nil {
			if !req.Status.IsValid() {
				return nil, ErrInvalidStatus
			}
			if *req.Status == models.AuctionStatusCancelled {
				if req.RejectionReason != nil && strings.TrimSpace(*req.RejectionReason) != "" {
					auction.RejectionReason = req.RejectionReason
				}
				bidCount, err := tx.CountBidsForAuction(ctx, auction.ID)
				if err != nil {
					return nil, err
				}
				if bidCount > 0 {
					s.log.Warn("admin_cancel_orphans_bids",
						zap.String("auction_id", auction.ID.String()),
						zap.Int64("bid_count", bidCount))
				}
			}
			auction.Status = *req.Status
		}

		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}
		updated = auction
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("auction_updated",
		zap.String("auction_id", auctionID.String()),
		zap.String("updated_by", principal.UserID.String()))
	return updated, nil
}

// DeleteAuction removes an auction that never reached activation and has an
// empty bid ledger, cascading the (empty) ledger delete.
func (s *AuctionService) DeleteAuction(ctx context.Context, principal auth.Principal, auctionID uuid.UUID) error {
	err := s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		if auction.SellerID != principal.UserID && !principal.IsAdmin() {
			return nil, ErrNotAuthorized
		}

		if auction.Status != models.AuctionStatusPendingApproval && auction.Status != models.AuctionStatusScheduled {
			return nil, ErrNotDeletable
		}

		bidCount, err := tx.CountBidsForAuction(ctx, auction.ID)
		if err != nil {
			return nil, err
		}
		if bidCount > 0 {
			return nil, ErrHasBids
		}

		if err := tx.DeleteBidsForAuction(ctx, auction.ID); err != nil {
			return nil, err
		}
		return nil, tx.DeleteAuction(ctx, auction.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("auction_deleted",
		zap.String("auction_id", auctionID.String()),
		zap.String("deleted_by", principal.UserID.String()))
	return nil
}
