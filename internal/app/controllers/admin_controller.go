package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/middleware"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// AdminController handles platform administration
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// GetStats handles the dashboard counters
// @Summary Get dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	resp, err := c.adminService.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListUsers handles the paged user listing
// @Summary List accounts with optional search
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in email and names"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.AdminUserListResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	resp, err := c.adminService.ListUsers(ctx.Request.Context(), ctx.Query("search"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ToggleBan handles flipping a user's banned state
// @Summary Ban or unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.BanResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot ban an admin"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/ban [put]
func (c *AdminController) ToggleBan(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.ToggleBan(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateRole handles a manual role override
// @Summary Set a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Router /admin/users/{id}/role [put]
func (c *AdminController) UpdateRole(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	if err := c.adminService.UpdateRole(ctx.Request.Context(), userID, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "role updated"})
}

// DeleteComment handles the moderation delete
// @Summary Delete any comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/comments/{id} [delete]
func (c *AdminController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteComment(ctx.Request.Context(), commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}

// Announce handles the platform-wide broadcast
// @Summary Broadcast an announcement to every active user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnnouncementRequest true "Announcement message"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/announce [post]
func (c *AdminController) Announce(ctx *gin.Context) {
	var req dto.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	if _, err := c.adminService.BroadcastAnnouncement(ctx.Request.Context(), req.Message); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "announcement sent"})
}
