package repository

import (
	"context"

	"bidwar/internal/models"

	"github.com/google/uuid"
)

// AppendBid adds one entry to an auction's bid ledger. Entries are
// immutable once written.
func (r *Repository) AppendBid(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// GetBidsForAuction returns the bid history, newest first.
func (r *Repository) GetBidsForAuction(ctx context.Context, auctionID uuid.UUID) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// DeleteBidsForAuction drops the ledger for an auction being removed
// pre-activation. This is the only path that deletes bids.
func (r *Repository) DeleteBidsForAuction(ctx context.Context, auctionID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Delete(&models.Bid{}).Error
}

// CountBidsForAuction returns the ledger size for an auction
func (r *Repository) CountBidsForAuction(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("auction_id = ?", auctionID).
		Count(&count).Error
	return count, err
}
