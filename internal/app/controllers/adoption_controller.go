package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models/dto"
	"github.com/TrashMob-eco/adopt-engine/internal/app/services"
	"github.com/TrashMob-eco/adopt-engine/internal/middleware"
)

// AdoptionController handles the adoption application workflow and the
// community reporting built on it
type AdoptionController struct {
	adoptionService *services.AdoptionService
}

// NewAdoptionController creates a new AdoptionController
func NewAdoptionController(adoptionService *services.AdoptionService) *AdoptionController {
	return &AdoptionController{
		adoptionService: adoptionService,
	}
}

// Submit handles a team's application to adopt an area
// @Summary Submit an adoption application
// @Description Creates a pending adoption application for a team and area. Fails when the team or area is invalid, the area cannot accept applications, or the team already has a pending or approved adoption for the area.
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitAdoptionRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=models.Adoption} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 409 {object} dto.ErrorResponse "Area not available or duplicate application"
// @Failure 422 {object} dto.ErrorResponse "Team or area fails a precondition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adoptions [post]
func (c *AdoptionController) Submit(ctx *gin.Context) {
	var req dto.SubmitAdoptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	adoption, err := c.adoptionService.SubmitApplication(ctx.Request.Context(), req.TeamID, req.AreaID, req.Notes, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(adoption))
}

// Approve handles approving a pending application
// @Summary Approve an adoption application
// @Description Approves a pending application. For an exclusive area the area is atomically marked Adopted; a concurrent approval of the same area fails with a conflict.
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Adoption ID"
// @Success 200 {object} dto.APIResponse{data=models.Adoption} "Application approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid adoption ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Adoption not found"
// @Failure 409 {object} dto.ErrorResponse "Not pending, or the area was adopted concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adoptions/{id}/approve [post]
func (c *AdoptionController) Approve(ctx *gin.Context) {
	adoptionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	adoption, err := c.adoptionService.ApproveApplication(ctx.Request.Context(), adoptionID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoption))
}

// Reject handles rejecting a pending application
// @Summary Reject an adoption application
// @Description Rejects a pending application with a reason. The area is never touched.
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Adoption ID"
// @Param request body dto.RejectAdoptionRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=models.Adoption} "Application rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Adoption not found"
// @Failure 409 {object} dto.ErrorResponse "Application is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adoptions/{id}/reject [post]
func (c *AdoptionController) Reject(ctx *gin.Context) {
	adoptionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectAdoptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	adoption, err := c.adoptionService.RejectApplication(ctx.Request.Context(), adoptionID, req.Reason, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoption))
}

// GetByID handles retrieving a single adoption
// @Summary Get adoption by ID
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Adoption ID"
// @Success 200 {object} dto.APIResponse{data=models.Adoption} "Adoption retrieved"
// @Failure 404 {object} dto.ErrorResponse "Adoption not found"
// @Router /adoptions/{id} [get]
func (c *AdoptionController) GetByID(ctx *gin.Context) {
	adoptionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	adoption, err := c.adoptionService.GetByID(ctx.Request.Context(), adoptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoption))
}

// ListByTeam handles retrieving a team's adoptions
// @Summary List a team's adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param teamId path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Adoption} "Adoptions retrieved"
// @Router /adoptions/team/{teamId} [get]
func (c *AdoptionController) ListByTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "teamId")
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.ListByTeam(ctx.Request.Context(), teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// ListByArea handles retrieving an area's adoptions
// @Summary List an area's adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param areaId path int true "Area ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Adoption} "Adoptions retrieved"
// @Router /adoptions/area/{areaId} [get]
func (c *AdoptionController) ListByArea(ctx *gin.Context) {
	areaID, ok := parseIDParam(ctx, "areaId")
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.ListByArea(ctx.Request.Context(), areaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// ListPending handles retrieving a community's applications awaiting review
// @Summary List a community's pending applications
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Adoption} "Pending applications retrieved"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{communityId}/adoptions/pending [get]
func (c *AdoptionController) ListPending(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.ListPendingByCommunity(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// ListApproved handles retrieving a community's approved adoptions
// @Summary List a community's approved adoptions
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Adoption} "Approved adoptions retrieved"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{communityId}/adoptions/approved [get]
func (c *AdoptionController) ListApproved(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.ListApprovedByCommunity(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// ListDelinquent handles retrieving a community's out-of-compliance adoptions
// @Summary List a community's delinquent adoptions
// @Description Retrieves the community's active approved adoptions that are out of compliance. Compliance is evaluated at request time against maintenance cadence and grace periods.
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AdoptionStatusResponse} "Delinquent adoptions retrieved"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{communityId}/adoptions/delinquent [get]
func (c *AdoptionController) ListDelinquent(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	delinquent, err := c.adoptionService.ListDelinquentByCommunity(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(delinquent))
}

// Stats handles community compliance statistics
// @Summary Community compliance statistics
// @Description Aggregates compliance over a community's active approved adoptions, evaluated at request time.
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=dto.ComplianceStatsResponse} "Statistics retrieved"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{communityId}/adoptions/stats [get]
func (c *AdoptionController) Stats(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	stats, err := c.adoptionService.ComplianceStats(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Export handles the CSV export of a community's approved adoptions
// @Summary Export a community's approved adoptions as CSV
// @Tags adoptions
// @Produce text/csv
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /communities/{communityId}/adoptions/export [get]
func (c *AdoptionController) Export(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	rows, err := c.adoptionService.ExportApprovedByCommunity(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=adoptions-community-%d.csv", communityID))
	ctx.Status(http.StatusOK)

	writer := csv.NewWriter(ctx.Writer)
	_ = writer.Write([]string{
		"adoptionId", "teamName", "areaName", "areaType",
		"applicationDate", "adoptionStartDate", "adoptionEndDate",
		"eventCount", "lastEventDate", "isCompliant",
	})
	for _, row := range rows {
		_ = writer.Write([]string{
			strconv.FormatInt(row.AdoptionID, 10),
			row.TeamName,
			row.AreaName,
			row.AreaType,
			row.ApplicationDate.Format(time.RFC3339),
			formatDatePtr(row.AdoptionStartDate),
			formatDatePtr(row.AdoptionEndDate),
			strconv.Itoa(row.EventCount),
			formatDatePtr(row.LastEventDate),
			strconv.FormatBool(row.IsCompliant),
		})
	}
	writer.Flush()
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
