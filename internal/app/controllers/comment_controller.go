package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/middleware"
)

// CommentController handles event comments
type CommentController struct {
	commentService *services.CommentService
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// Add handles adding a comment to an event
// @Summary Comment on an event
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id}/comments [post]
func (c *CommentController) Add(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	resp, err := c.commentService.Add(ctx.Request.Context(), eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// List handles the comment listing of an event
// @Summary List an event's comments
// @Tags comments
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id}/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.commentService.List(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Delete handles deleting a comment
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), commentID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}
