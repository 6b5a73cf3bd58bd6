package repository

import (
	"context"
	"time"

	"bidwar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for transaction scoping.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// WithTx returns a repository bound to the given transaction handle
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateAuction persists a new auction
func (r *Repository) CreateAuction(ctx context.Context, auction *models.Auction) error {
	return r.db.WithContext(ctx).Create(auction).Error
}

// GetAuctionByID retrieves an auction by ID
func (r *Repository) GetAuctionByID(ctx context.Context, auctionID uuid.UUID) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).Where("id = ?", auctionID).First(&auction).Error
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// SaveAuction writes back every field of an auction
func (r *Repository) SaveAuction(ctx context.Context, auction *models.Auction) error {
	return r.db.WithContext(ctx).Save(auction).Error
}

// DeleteAuction removes the auction row. Callers cascade the bid ledger
// first, inside the same transaction.
func (r *Repository) DeleteAuction(ctx context.Context, auctionID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", auctionID).Delete(&models.Auction{}).Error
}

// ListAuctions returns one page of auctions plus the total count for the
// same filter. Unfiltered listings default to the statuses relevant to a
// visitor: Active and Scheduled.
func (r *Repository) ListAuctions(ctx context.Context, filter models.AuctionListFilter) ([]*models.Auction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Auction{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	} else {
		query = query.Where("status IN ?", []models.AuctionStatus{
			models.AuctionStatusActive,
			models.AuctionStatusScheduled,
		})
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var auctions []*models.Auction
	err := query.
		Order("start_time ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&auctions).Error
	if err != nil {
		return nil, 0, err
	}
	return auctions, total, nil
}

// GetDueScheduledAuctionIDs returns IDs of Scheduled auctions whose start
// time has passed.
func (r *Repository) GetDueScheduledAuctionIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	return r.auctionIDsWhere(ctx, "status = ? AND start_time <= ?", models.AuctionStatusScheduled, now)
}

// GetDueActiveAuctionIDs returns IDs of Active auctions whose end time has
// passed.
func (r *Repository) GetDueActiveAuctionIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	return r.auctionIDsWhere(ctx, "status = ? AND end_time <= ?", models.AuctionStatusActive, now)
}

func (r *Repository) auctionIDsWhere(ctx context.Context, cond string, args ...any) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Auction{}).
		Where(cond, args...).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
