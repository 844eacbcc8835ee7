package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/middleware"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// ClubController handles club lifecycle and membership operations
type ClubController struct {
	clubService *services.ClubService
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService *services.ClubService, logger zerolog.Logger) *ClubController {
	return &ClubController{
		clubService: clubService,
		logger:      logger,
	}
}

func identity(ctx *gin.Context) (int64, models.Role, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("missing token"))
		return 0, "", false
	}
	role, ok := middleware.GetUserRole(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("missing token"))
		return 0, "", false
	}
	return userID, role, true
}

// Create handles club creation
// @Summary Create a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club information"
// @Success 201 {object} dto.ClubResponse
// @Failure 409 {object} dto.ErrorResponse "Club name already exists"
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	var req dto.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	resp, err := c.clubService.Create(ctx.Request.Context(), userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// List handles the public club listing
// @Summary List active clubs
// @Tags clubs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ClubListResponse
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	resp, err := c.clubService.ListPublic(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetDetails handles the club detail view
// @Summary Get a club with its events
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ClubDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clubs/{id} [get]
func (c *ClubController) GetDetails(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	viewerID, _ := middleware.GetUserID(ctx)
	viewerRole, _ := middleware.GetUserRole(ctx)

	resp, err := c.clubService.GetDetails(ctx.Request.Context(), clubID, viewerID, viewerRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Approve handles club approval
// @Summary Approve a pending club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/clubs/{id}/approve [put]
func (c *ClubController) Approve(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Approve(ctx.Request.Context(), clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "club approved"})
}

// Delete handles club deletion
// @Summary Delete a club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/clubs/{id} [delete]
func (c *ClubController) Delete(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Delete(ctx.Request.Context(), clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "club deleted"})
}

// Follow handles following a club
// @Summary Follow a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Admins cannot follow clubs"
// @Failure 409 {object} dto.ErrorResponse "Club is not active"
// @Router /clubs/{id}/follow [post]
func (c *ClubController) Follow(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Follow(ctx.Request.Context(), clubID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "club followed"})
}

// Leave handles unfollowing a club
// @Summary Unfollow a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Not following this club"
// @Router /clubs/{id}/leave [post]
func (c *ClubController) Leave(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		return
	}

	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Leave(ctx.Request.Context(), clubID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "club unfollowed"})
}

// RemoveMember handles dropping a follower from a club
// @Summary Remove a follower from a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.RemoveMemberRequest true "Follower to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /clubs/{id}/remove-member [post]
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RemoveMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	if err := c.clubService.RemoveFollower(ctx.Request.Context(), clubID, req.UserID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "follower removed"})
}

// GetMine handles listing the caller's managed clubs
// @Summary List clubs the caller manages
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClubResponse
// @Router /clubs/my-clubs [get]
func (c *ClubController) GetMine(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	resp, err := c.clubService.GetMine(ctx.Request.Context(), userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ForceUpdate handles the admin club override
// @Summary Update a club, optionally handing the presidency over
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to update"
// @Success 200 {object} dto.ClubResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/clubs/{id} [put]
func (c *ClubController) ForceUpdate(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	resp, err := c.clubService.ForceUpdate(ctx.Request.Context(), clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
