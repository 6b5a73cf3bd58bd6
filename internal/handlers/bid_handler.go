package handlers

import (
	"net/http"

	"bidwar/internal/auth"
	"bidwar/internal/models"
	"bidwar/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BidHandler struct {
	auctions *services.AuctionService
}

func NewBidHandler(auctions *services.AuctionService) *BidHandler {
	return &BidHandler{auctions: auctions}
}

// PlaceBid places a bid on an active auction
// POST /api/auctions/:id/bids
func (h *BidHandler) PlaceBid(c *gin.Context) {
	principal, exists := auth.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auction id"})
		return
	}

	var req models.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, auction, err := h.auctions.PlaceBid(c.Request.Context(), principal.UserID, auctionID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "bid placed successfully",
		"bid":             bid,
		"updated_auction": auction,
	})
}

// GetBidsForAuction returns the bid history, newest first
// GET /api/auctions/:id/bids
func (h *BidHandler) GetBidsForAuction(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auction id"})
		return
	}

	bids, err := h.auctions.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}
