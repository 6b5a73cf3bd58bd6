package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bidwar/internal/auth"
	"bidwar/internal/models"
	"bidwar/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuctionHandler struct {
	auctions *services.AuctionService
}

func NewAuctionHandler(auctions *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctions: auctions}
}

// CreateAuction lists a new item
// POST /api/auctions
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	principal, exists := auth.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auction, err := h.auctions.CreateAuction(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, auction)
}

// ListAuctions returns a paginated listing
// GET /api/auctions?status=&seller_id=&page=&limit=
func (h *AuctionHandler) ListAuctions(c *gin.Context) {
	filter := models.AuctionListFilter{Page: 1, Limit: 10}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}

	// an unknown status or malformed seller id falls back to the default
	// visitor-facing filter rather than failing the request
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.AuctionStatus(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}
	if sellerStr := c.Query("seller_id"); sellerStr != "" {
		if sellerID, err := uuid.Parse(sellerStr); err == nil {
			filter.SellerID = &sellerID
		}
	}

	page, err := h.auctions.ListAuctions(c.Request.Context(), filter)
	if err != nil {
		zap.L().Error("list_auctions_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list auctions"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetAuction returns one auction
// GET /api/auctions/:id
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auction id"})
		return
	}

	auction, err := h.auctions.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// UpdateAuction edits an auction (owner or admin)
// PUT /api/auctions/:id
func (h *AuctionHandler) UpdateAuction(c *gin.Context) {
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

	var req models.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auction, err := h.auctions.UpdateAuction(c.Request.Context(), principal, auctionID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// DeleteAuction removes a pre-activation auction with no bids
// DELETE /api/auctions/:id
func (h *AuctionHandler) DeleteAuction(c *gin.Context) {
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

	if err := h.auctions.DeleteAuction(c.Request.Context(), principal, auctionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "auction and associated bids deleted"})
}

// ApproveAuction approves a pending auction (admin)
// PUT /api/auctions/:id/approve
func (h *AuctionHandler) ApproveAuction(c *gin.Context) {
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

	auction, err := h.auctions.ApproveAuction(c.Request.Context(), principal.UserID, auctionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// RejectAuction rejects a pending or scheduled auction (admin)
// PUT /api/auctions/:id/reject
func (h *AuctionHandler) RejectAuction(c *gin.Context) {
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

	var req models.RejectAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a rejection reason is required"})
		return
	}

	auction, err := h.auctions.RejectAuction(c.Request.Context(), principal.UserID, auctionID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, auction)
}

// respondServiceError translates lifecycle engine errors into HTTP
// responses, preserving the specific guard message so callers can tell the
// rejections apart.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuctionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTimeRange),
		errors.Is(err, services.ErrStartingPriceNotPositive),
		errors.Is(err, services.ErrNotPendingApproval),
		errors.Is(err, services.ErrNotRejectable),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrNotEditable),
		errors.Is(err, services.ErrNotDeletable),
		errors.Is(err, services.ErrHasBids),
		errors.Is(err, services.ErrPriceChangeTooLate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAuctionNotActive),
		errors.Is(err, services.ErrAuctionNotStarted),
		errors.Is(err, services.ErrAuctionOver),
		errors.Is(err, services.ErrSelfBid),
		errors.Is(err, services.ErrBidTooLow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.L().Error("auction_request_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
