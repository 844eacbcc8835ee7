package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/middleware"
	"github.com/dyilmaz/campushub/internal/pkg/helpers"
)

// EventController handles event lifecycle and participation operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// Create handles event creation
// @Summary Create an event under a club
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse "Capacity must be a positive integer"
// @Failure 403 {object} dto.ErrorResponse
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	resp, err := c.eventService.Create(ctx.Request.Context(), userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// List handles the public event feed
// @Summary List events of active clubs
// @Tags events
// @Produce json
// @Param search query string false "Search in title and description"
// @Param dateFrom query string false "Earliest event date (RFC 3339)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.EventListResponse
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	filter := &dto.EventFilterRequest{
		Search: ctx.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := ctx.Query("dateFrom"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid dateFrom parameter"))
			return
		}
		filter.DateFrom = &parsed
	}

	resp, err := c.eventService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetDetail handles the event detail view
// @Summary Get an event with its participant count
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetDetail(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserID(ctx); ok {
		viewerID = &id
	}

	resp, err := c.eventService.GetDetail(ctx.Request.Context(), eventID, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Update handles a partial event update
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	if err := c.eventService.Update(ctx.Request.Context(), eventID, userID, role, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "event updated"})
}

// Delete handles event deletion
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), eventID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "event deleted"})
}

// Join handles joining an event
// @Summary Join an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Event is full"
// @Router /events/{id}/join [post]
func (c *EventController) Join(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Join(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "event joined"})
}

// Leave handles leaving an event
// @Summary Leave an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Not participating in this event"
// @Router /events/{id}/leave [post]
func (c *EventController) Leave(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Leave(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "event left"})
}

// RemoveParticipant handles dropping a participant from an event
// @Summary Remove a participant from an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.RemoveParticipantRequest true "Participant to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /events/{id}/remove-participant [post]
func (c *EventController) RemoveParticipant(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RemoveParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request payload"))
		return
	}

	if err := c.eventService.RemoveParticipant(ctx.Request.Context(), eventID, req.UserID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "participant removed"})
}

// ListParticipants handles the participant listing
// @Summary List an event's participants
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {array} dto.EventParticipantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
