package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models/dto"
	"github.com/TrashMob-eco/adopt-engine/internal/app/services"
	"github.com/TrashMob-eco/adopt-engine/internal/middleware"
)

// LedgerController handles linking completed cleanup events to adoptions
type LedgerController struct {
	ledgerService *services.LedgerService
}

// NewLedgerController creates a new LedgerController
func NewLedgerController(ledgerService *services.LedgerService) *LedgerController {
	return &LedgerController{
		ledgerService: ledgerService,
	}
}

// LinkEvent handles crediting a cleanup event to an adoption
// @Summary Link a cleanup event to an adoption
// @Description Records that a completed cleanup event satisfied the adoption's upkeep obligation and refreshes the adoption's compliance snapshot.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Adoption ID"
// @Param request body dto.LinkEventRequest true "Event to credit"
// @Success 201 {object} dto.APIResponse{data=models.AdoptionEventLink} "Event linked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Adoption not found"
// @Failure 409 {object} dto.ErrorResponse "Adoption not approved, or event already linked"
// @Failure 422 {object} dto.ErrorResponse "Event does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adoptions/{id}/events [post]
func (c *LedgerController) LinkEvent(ctx *gin.Context) {
	adoptionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.LinkEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	link, err := c.ledgerService.LinkEvent(ctx.Request.Context(), adoptionID, req.EventID, req.Notes, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(link))
}

// UnlinkEvent handles removing a ledger entry
// @Summary Unlink a cleanup event from an adoption
// @Description Removes a ledger entry and refreshes the owning adoption's compliance snapshot.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param linkId path int true "Link ID"
// @Success 204 "Event unlinked"
// @Failure 400 {object} dto.ErrorResponse "Invalid link ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adoption-events/{linkId} [delete]
func (c *LedgerController) UnlinkEvent(ctx *gin.Context) {
	linkID, ok := parseIDParam(ctx, "linkId")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.ledgerService.UnlinkEvent(ctx.Request.Context(), linkID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListByAdoption handles retrieving an adoption's ledger entries
// @Summary List an adoption's linked events
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "Adoption ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AdoptionEventLink} "Links retrieved"
// @Failure 404 {object} dto.ErrorResponse "Adoption not found"
// @Router /adoptions/{id}/events [get]
func (c *LedgerController) ListByAdoption(ctx *gin.Context) {
	adoptionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	links, err := c.ledgerService.ListLinksByAdoption(ctx.Request.Context(), adoptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(links))
}

// ListByEvent handles retrieving every adoption an event is credited to
// @Summary List adoptions an event is linked to
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AdoptionEventLink} "Links retrieved"
// @Router /events/{eventId}/adoptions [get]
func (c *LedgerController) ListByEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	links, err := c.ledgerService.ListLinksByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(links))
}

// IsLinked handles checking whether an (adoption, event) pair is linked
// @Summary Check whether an event is linked to an adoption
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param adoptionId query int true "Adoption ID"
// @Success 200 {object} dto.APIResponse{data=bool} "Link state"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Router /events/{eventId}/adoptions/linked [get]
func (c *LedgerController) IsLinked(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	adoptionID, err := strconv.ParseInt(ctx.Query("adoptionId"), 10, 64)
	if err != nil || adoptionID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid adoptionId parameter").
			WithField("adoptionId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	linked, err := c.ledgerService.IsEventLinked(ctx.Request.Context(), adoptionID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(linked))
}

// ActiveForTeam handles retrieving the adoptions a team may log events against
// @Summary List a team's active adoption contracts
// @Description Retrieves a team's approved adoptions whose contracts are still running.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param teamId path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Adoption} "Active adoptions retrieved"
// @Router /adoptions/team/{teamId}/active [get]
func (c *LedgerController) ActiveForTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "teamId")
	if !ok {
		return
	}

	adoptions, err := c.ledgerService.ActiveAdoptionsForTeam(ctx.Request.Context(), teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}
