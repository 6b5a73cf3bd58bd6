package services

import (
	"context"
	"strings"

	"bidwar/internal/events"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApproveAuction moves a pending auction into play. If its start time has
// already passed it goes straight to Active, otherwise it is Scheduled for
// the sweeper to activate.
func (s *AuctionService) ApproveAuction(ctx context.Context, adminID uuid.UUID, auctionID uuid.UUID) (*models.Auction, error) {
	var approved *models.Auction

	err := s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		if auction.Status != models.AuctionStatusPendingApproval {
			return nil, ErrNotPendingApproval
		}

		now := s.now()
		if auction.StartTime.After(now) {
			auction.Status = models.AuctionStatusScheduled
		} else {
			auction.Status = models.AuctionStatusActive
		}
		auction.AdminApproverID = &adminID
		auction.ApprovalTimestamp = &now
		auction.RejectionReason = nil

		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}
		approved = auction

		return []pendingEvent{{
			key: events.KeyAuctionApproved,
			payload: events.AuctionApproved{
				AuctionID: auction.ID,
				SellerID:  auction.SellerID,
				AdminID:   adminID,
				NewStatus: string(auction.Status),
				Title:     auction.Title,
			},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("auction_approved",
		zap.String("auction_id", auctionID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("new_status", string(approved.Status)))
	return approved, nil
}

// RejectAuction refuses a pending or scheduled auction with a mandatory
// moderation reason.
func (s *AuctionService) RejectAuction(ctx context.Context, adminID uuid.UUID, auctionID uuid.UUID, reason string) (*models.Auction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	var rejected *models.Auction

	err := s.mutateAuction(ctx, auctionID, func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error) {
		if auction.Status != models.AuctionStatusPendingApproval && auction.Status != models.AuctionStatusScheduled {
			return nil, ErrNotRejectable
		}

		auction.Status = models.AuctionStatusRejected
		auction.AdminApproverID = &adminID
		auction.RejectionReason = &reason
		auction.ApprovalTimestamp = nil

		if err := tx.SaveAuction(ctx, auction); err != nil {
			return nil, err
		}
		rejected = auction

		return []pendingEvent{{
			key: events.KeyAuctionRejected,
			payload: events.AuctionRejected{
				AuctionID: auction.ID,
				SellerID:  auction.SellerID,
				AdminID:   adminID,
				Reason:    reason,
				Title:     auction.Title,
			},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("auction_rejected",
		zap.String("auction_id", auctionID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("reason", reason))
	return rejected, nil
}
