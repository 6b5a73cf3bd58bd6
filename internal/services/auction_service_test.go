package services

import (
	"context"
	"testing"
	"time"

	"bidwar/internal/events"
	"bidwar/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuctionAlwaysStartsPendingApproval(t *testing.T) {
	svc, recorder := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	// even with a start time already in the past, creation never skips
	// moderation
	auction := createTestAuction(t, svc, seller,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	assert.Equal(t, models.AuctionStatusPendingApproval, auction.Status)
	assert.True(t, auction.CurrentPrice.Equal(auction.StartingPrice))
	assert.Nil(t, auction.HighestBidderID)
	assert.Nil(t, auction.WinnerID)
	assert.Equal(t, models.InspectionNotRequired, auction.InspectionStatus)

	stored, err := svc.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusPendingApproval, stored.Status)

	require.Equal(t, []string{events.KeyAuctionCreated}, recorder.Keys())
	created := recorder.Events()[0].Payload.(events.AuctionCreated)
	assert.Equal(t, auction.ID, created.AuctionID)
	assert.Equal(t, seller, created.SellerID)
	assert.Equal(t, "Vintage camera", created.Title)
}

func TestCreateAuctionValidation(t *testing.T) {
	svc, recorder := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.CreateAuction(ctx, uuid.New(), &models.CreateAuctionRequest{
		Title:         "Bad price",
		Description:   "starting price must be positive",
		StartingPrice: price("0"),
		StartTime:     now.Add(time.Hour),
		EndTime:       now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrStartingPriceNotPositive)

	_, err = svc.CreateAuction(ctx, uuid.New(), &models.CreateAuctionRequest{
		Title:         "Bad window",
		Description:   "start must precede end",
		StartingPrice: price("10.00"),
		StartTime:     now.Add(2 * time.Hour),
		EndTime:       now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// nothing was published for refused creations
	assert.Empty(t, recorder.Keys())
}

func TestGetAuctionNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetAuction(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAuctionNotFound)
}

func TestListAuctionsDefaultFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()
	admin := uuid.New()

	// one of each: pending, scheduled, active
	createTestAuction(t, svc, seller, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	scheduled := createTestAuction(t, svc, seller, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	_, err := svc.ApproveAuction(ctx, admin, scheduled.ID)
	require.NoError(t, err)

	active := createTestAuction(t, svc, seller, time.Now().Add(-time.Hour), time.Now().Add(2*time.Hour))
	_, err = svc.ApproveAuction(ctx, admin, active.ID)
	require.NoError(t, err)

	// default filter shows only what a visitor cares about
	page, err := svc.ListAuctions(ctx, models.AuctionListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	for _, a := range page.Auctions {
		assert.Contains(t, []models.AuctionStatus{
			models.AuctionStatusActive,
			models.AuctionStatusScheduled,
		}, a.Status)
	}

	// explicit status filter
	pending := models.AuctionStatusPendingApproval
	page, err = svc.ListAuctions(ctx, models.AuctionListFilter{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)

	// seller filter with a stranger's id matches nothing
	stranger := uuid.New()
	page, err = svc.ListAuctions(ctx, models.AuctionListFilter{SellerID: &stranger})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestListAuctionsPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()
	pending := models.AuctionStatusPendingApproval

	for i := 0; i < 5; i++ {
		createTestAuction(t, svc, seller,
			time.Now().Add(time.Duration(i+1)*time.Hour),
			time.Now().Add(time.Duration(i+2)*time.Hour))
	}

	page, err := svc.ListAuctions(ctx, models.AuctionListFilter{Status: &pending, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Auctions, 2)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.TotalCount)
}
