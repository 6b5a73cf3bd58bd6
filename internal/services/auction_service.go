package services

import (
	"context"
	"errors"
	"time"

	"bidwar/internal/events"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuctionService owns the auction lifecycle state machine: creation,
// moderation, scheduling transitions, bidding, and closure. All mutations of
// one auction are serialized through a per-auction lock and applied inside a
// database transaction; events are published only after the transaction
// commits.
type AuctionService struct {
	repo  *repository.Repository
	pub   events.Publisher
	log   *zap.Logger
	locks *keyedMutex

	// now is swappable so tests can pin the clock
	now func() time.Time
}

func NewAuctionService(repo *repository.Repository, pub events.Publisher, log *zap.Logger) *AuctionService {
	return &AuctionService{
		repo:  repo,
		pub:   pub,
		log:   log,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// CreateAuction lists a new item for auction. The auction always starts in
// PendingApproval regardless of the requested start time; an admin approval
// decides whether it goes Active or Scheduled.
func (s *AuctionService) CreateAuction(ctx context.Context, sellerID uuid.UUID, req *models.CreateAuctionRequest) (*models.Auction, error) {
	if !req.StartingPrice.IsPositive() {
		return nil, ErrStartingPriceNotPositive
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	auction := &models.Auction{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		StartingPrice:    req.StartingPrice,
		CurrentPrice:     req.StartingPrice,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		SellerID:         sellerID,
		Status:           models.AuctionStatusPendingApproval,
		InspectionStatus: models.InspectionNotRequired,
	}

	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return nil, err
	}

	s.pub.Publish(ctx, events.KeyAuctionCreated, events.AuctionCreated{
		AuctionID:     auction.ID,
		SellerID:      auction.SellerID,
		Status:        string(auction.Status),
		Title:         auction.Title,
		StartTime:     auction.StartTime,
		EndTime:       auction.EndTime,
		StartingPrice: auction.StartingPrice,
	})

	s.log.Info("auction_created",
		zap.String("auction_id", auction.ID.String()),
		zap.String("seller_id", sellerID.String()))
	return auction, nil
}

// GetAuction retrieves a single auction
func (s *AuctionService) GetAuction(ctx context.Context, auctionID uuid.UUID) (*models.Auction, error) {
	auction, err := s.repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}
	return auction, nil
}

// ListAuctions returns a paginated page of auctions
func (s *AuctionService) ListAuctions(ctx context.Context, filter models.AuctionListFilter) (*models.AuctionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	auctions, total, err := s.repo.ListAuctions(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &models.AuctionPage{
		Auctions:    auctions,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}, nil
}

// mutateAuction runs fn against the current state of one auction under its
// per-auction lock, inside a transaction. fn may return events to publish;
// they are delivered only after the commit succeeds and the lock is
// released, so a slow or reconnecting bus never extends the critical
// section.
func (s *AuctionService) mutateAuction(
	ctx context.Context,
	auctionID uuid.UUID,
	fn func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error),
) error {
	pending, err := s.mutateLocked(ctx, auctionID, fn)
	if err != nil {
		return err
	}

	for _, ev := range pending {
		s.pub.Publish(ctx, ev.key, ev.payload)
	}
	return nil
}

func (s *AuctionService) mutateLocked(
	ctx context.Context,
	auctionID uuid.UUID,
	fn func(tx *repository.Repository, auction *models.Auction) ([]pendingEvent, error),
) ([]pendingEvent, error) {
	unlock := s.locks.lock(auctionID)
	defer unlock()

	var pending []pendingEvent
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		auction, err := txRepo.GetAuctionByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return err
		}

		pending, err = fn(txRepo, auction)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

type pendingEvent struct {
	key     string
	payload any
}
