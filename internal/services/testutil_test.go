package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bidwar/internal/auth"
	"bidwar/internal/events"
	"bidwar/internal/models"
	"bidwar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. The shared-cache
// name keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Auction{}, &models.Bid{}))
	return db
}

// newTestService wires an AuctionService against an in-memory store and a
// recording publisher.
func newTestService(t *testing.T) (*AuctionService, *events.Recorder) {
	t.Helper()

	recorder := events.NewRecorder()
	svc := NewAuctionService(repository.NewRepository(setupTestDB(t)), recorder, zap.NewNop())
	return svc, recorder
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func adminPrincipal() auth.Principal {
	return auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}
}

func sellerPrincipal(id uuid.UUID) auth.Principal {
	return auth.Principal{UserID: id, Role: auth.RoleSeller}
}

// createTestAuction lists an auction owned by sellerID with the given time
// window, starting at $100.
func createTestAuction(t *testing.T, svc *AuctionService, sellerID uuid.UUID, start, end time.Time) *models.Auction {
	t.Helper()

	auction, err := svc.CreateAuction(context.Background(), sellerID, &models.CreateAuctionRequest{
		Title:         "Vintage camera",
		Description:   "A 1962 rangefinder in working order",
		StartingPrice: price("100.00"),
		StartTime:     start,
		EndTime:       end,
	})
	require.NoError(t, err)
	return auction
}

// approveAndActivate pushes a pending auction through admin approval. The
// start time decides whether it lands Active or Scheduled.
func approveAndActivate(t *testing.T, svc *AuctionService, auctionID uuid.UUID) *models.Auction {
	t.Helper()

	auction, err := svc.ApproveAuction(context.Background(), uuid.New(), auctionID)
	require.NoError(t, err)
	return auction
}
