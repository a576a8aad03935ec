package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/models/dto"
	"github.com/TrashMob-eco/adopt-engine/internal/app/services"
	"github.com/TrashMob-eco/adopt-engine/internal/middleware"
)

// AreaController handles adoptable area registry operations
type AreaController struct {
	areaService *services.AreaService
}

// NewAreaController creates a new AreaController
func NewAreaController(areaService *services.AreaService) *AreaController {
	return &AreaController{
		areaService: areaService,
	}
}

// ListByCommunity handles retrieving a community's adoptable areas
// @Summary List a community's adoptable areas
// @Description Retrieves the community's active areas, name-ordered. With available=true only areas open to a new application are returned.
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Param available query bool false "Only areas accepting new applications"
// @Success 200 {object} dto.APIResponse{data=[]models.AdoptableArea} "Areas retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid community ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communities/{communityId}/areas [get]
func (c *AreaController) ListByCommunity(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	availableOnly := ctx.Query("available") == "true"

	var err error
	var areas []models.AdoptableArea
	if availableOnly {
		areas, err = c.areaService.ListAvailableByCommunity(ctx.Request.Context(), communityID)
	} else {
		areas, err = c.areaService.ListByCommunity(ctx.Request.Context(), communityID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(areas))
}

// CheckName handles area name uniqueness checks
// @Summary Check area name availability
// @Description Checks whether an area name is free within the community. The comparison is case-insensitive; excludeAreaId supports edit-in-place.
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param communityId path int true "Community ID"
// @Param name query string true "Proposed area name"
// @Param excludeAreaId query int false "Area ID to exclude from the check"
// @Success 200 {object} dto.APIResponse{data=dto.NameCheckResponse} "Name availability"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communities/{communityId}/areas/name-check [get]
func (c *AreaController) CheckName(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "communityId")
	if !ok {
		return
	}

	name := ctx.Query("name")

	var excludeAreaID *int64
	if excludeStr := ctx.Query("excludeAreaId"); excludeStr != "" {
		exclude, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid excludeAreaId parameter").
				WithField("excludeAreaId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		excludeAreaID = &exclude
	}

	available, err := c.areaService.IsNameAvailable(ctx.Request.Context(), communityID, name, excludeAreaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NameCheckResponse{
		Name:      name,
		Available: available,
	}))
}

// parseIDParam parses a path parameter as a positive int64, writing the 400
// itself on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
