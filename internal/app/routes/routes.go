package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/TrashMob-eco/adopt-engine/internal/app/controllers"
	"github.com/TrashMob-eco/adopt-engine/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	areaController *controllers.AreaController,
	adoptionController *controllers.AdoptionController,
	ledgerController *controllers.LedgerController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group; everything requires a valid platform token.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())

	// Community-scoped read surfaces
	communities := v1.Group("/communities/:communityId")
	{
		communities.GET("/areas", areaController.ListByCommunity)
		communities.GET("/areas/name-check", areaController.CheckName)

		communities.GET("/adoptions/pending", adoptionController.ListPending)
		communities.GET("/adoptions/approved", adoptionController.ListApproved)
		communities.GET("/adoptions/delinquent", adoptionController.ListDelinquent)
		communities.GET("/adoptions/stats", adoptionController.Stats)
		communities.GET("/adoptions/export", adoptionController.Export)
	}

	// Adoption workflow and its ledger
	adoptions := v1.Group("/adoptions")
	{
		adoptions.POST("", adoptionController.Submit)
		adoptions.GET("/:id", adoptionController.GetByID)
		adoptions.POST("/:id/approve", adoptionController.Approve)
		adoptions.POST("/:id/reject", adoptionController.Reject)
		adoptions.GET("/team/:teamId", adoptionController.ListByTeam)
		adoptions.GET("/team/:teamId/active", ledgerController.ActiveForTeam)
		adoptions.GET("/area/:areaId", adoptionController.ListByArea)

		adoptions.POST("/:id/events", ledgerController.LinkEvent)
		adoptions.GET("/:id/events", ledgerController.ListByAdoption)
	}

	v1.DELETE("/adoption-events/:linkId", ledgerController.UnlinkEvent)

	events := v1.Group("/events/:eventId")
	{
		events.GET("/adoptions", ledgerController.ListByEvent)
		events.GET("/adoptions/linked", ledgerController.IsLinked)
	}
}
