package services

import (
	"context"
	"testing"
	"time"

	"bidwar/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestUpdateAuctionOwnerEditsPendingDraft(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	newPrice := price("250.00")
	updated, err := svc.UpdateAuction(ctx, sellerPrincipal(seller), auction.ID, &models.UpdateAuctionRequest{
		Title:         strptr("Vintage camera, mint"),
		StartingPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vintage camera, mint", updated.Title)
	assert.True(t, updated.StartingPrice.Equal(newPrice))
	// no bids yet, so the current price tracks the new starting price
	assert.True(t, updated.CurrentPrice.Equal(newPrice))
}

func TestUpdateAuctionAuthorization(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()
	stranger := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	_, err := svc.UpdateAuction(ctx, sellerPrincipal(stranger), auction.ID, &models.UpdateAuctionRequest{
		Title: strptr("hijacked"),
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// admins edit regardless of ownership
	_, err = svc.UpdateAuction(ctx, adminPrincipal(), auction.ID, &models.UpdateAuctionRequest{
		Title: strptr("corrected title"),
	})
	require.NoError(t, err)
}

func TestUpdateAuctionOwnerLockedOutAfterActivation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(-time.Minute), time.Now().Add(time.Hour))
	approveAndActivate(t, svc, auction.ID)

	_, err := svc.UpdateAuction(ctx, sellerPrincipal(seller), auction.ID, &models.UpdateAuctionRequest{
		Title: strptr("too late"),
	})
	assert.ErrorIs(t, err, ErrNotEditable)

	// admins may still edit, but not reprice a live auction
	newPrice := price("1.00")
	_, err = svc.UpdateAuction(ctx, adminPrincipal(), auction.ID, &models.UpdateAuctionRequest{
		StartingPrice: &newPrice,
	})
	assert.ErrorIs(t, err, ErrPriceChangeTooLate)
}

func TestUpdateAuctionTimeValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	badStart := auction.EndTime.Add(time.Hour)
	_, err := svc.UpdateAuction(ctx, sellerPrincipal(seller), auction.ID, &models.UpdateAuctionRequest{
		StartTime: &badStart,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUpdateAuctionAdminStatusOverride(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(-time.Minute), time.Now().Add(time.Hour))
	approveAndActivate(t, svc, auction.ID)

	bad := models.AuctionStatus("LIMBO")
	_, err := svc.UpdateAuction(ctx, adminPrincipal(), auction.ID, &models.UpdateAuctionRequest{
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	cancelled := models.AuctionStatusCancelled
	updated, err := svc.UpdateAuction(ctx, adminPrincipal(), auction.ID, &models.UpdateAuctionRequest{
		Status:          &cancelled,
		RejectionReason: strptr("counterfeit listing"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusCancelled, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "counterfeit listing", *updated.RejectionReason)
}

func TestUpdateAuctionStatusIgnoredForNonAdmins(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	active := models.AuctionStatusActive
	updated, err := svc.UpdateAuction(ctx, sellerPrincipal(seller), auction.ID, &models.UpdateAuctionRequest{
		Status: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusPendingApproval, updated.Status)
}

func TestDeleteAuction(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	err := svc.DeleteAuction(ctx, sellerPrincipal(uuid.New()), auction.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, svc.DeleteAuction(ctx, sellerPrincipal(seller), auction.ID))

	_, err = svc.GetAuction(ctx, auction.ID)
	assert.ErrorIs(t, err, ErrAuctionNotFound)

	err = svc.DeleteAuction(ctx, sellerPrincipal(seller), auction.ID)
	assert.ErrorIs(t, err, ErrAuctionNotFound)
}

func TestDeleteAuctionGuards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seller := uuid.New()
	bidder := uuid.New()

	auction := createTestAuction(t, svc, seller,
		time.Now().Add(-time.Minute), time.Now().Add(time.Hour))
	approveAndActivate(t, svc, auction.ID)

	err := svc.DeleteAuction(ctx, sellerPrincipal(seller), auction.ID)
	assert.ErrorIs(t, err, ErrNotDeletable)

	// a scheduled auction that somehow collected bids still refuses deletion
	_, _, err = svc.PlaceBid(ctx, bidder, auction.ID, price("150.00"))
	require.NoError(t, err)
	scheduled := models.AuctionStatusScheduled
	_, err = svc.UpdateAuction(ctx, adminPrincipal(), auction.ID, &models.UpdateAuctionRequest{
		Status: &scheduled,
	})
	require.NoError(t, err)

	err = svc.DeleteAuction(ctx, adminPrincipal(), auction.ID)
	assert.ErrorIs(t, err, ErrHasBids)
}
