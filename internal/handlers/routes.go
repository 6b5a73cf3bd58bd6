package handlers

import (
	"bidwar/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auction API onto router. The server and the
// handler tests share this one route tree.
func RegisterRoutes(router *gin.Engine, auctions *AuctionHandler, bids *BidHandler) {
	// Public auction routes
	router.GET("/api/auctions", auctions.ListAuctions)
	router.GET("/api/auctions/:id", auctions.GetAuction)
	router.GET("/api/auctions/:id/bids", bids.GetBidsForAuction)

	// Authenticated routes
	api := router.Group("/api")
	api.Use(auth.Middleware())
	{
		api.POST("/auctions", auth.RequireRole(auth.RoleSeller), auctions.CreateAuction)
		api.PUT("/auctions/:id", auctions.UpdateAuction)
		api.DELETE("/auctions/:id", auctions.DeleteAuction)

		api.POST("/auctions/:id/bids", auth.RequireRole(auth.RoleBuyer), bids.PlaceBid)

		api.PUT("/auctions/:id/approve", auth.RequireRole(auth.RoleAdmin), auctions.ApproveAuction)
		api.PUT("/auctions/:id/reject", auth.RequireRole(auth.RoleAdmin), auctions.RejectAuction)
	}
}
