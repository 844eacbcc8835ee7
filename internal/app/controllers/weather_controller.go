package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/services"
	"github.com/dyilmaz/campushub/internal/middleware"
)

// WeatherController serves the campus weather widget
type WeatherController struct {
	weatherService *services.WeatherService
	logger         zerolog.Logger
}

// NewWeatherController creates a new WeatherController
func NewWeatherController(weatherService *services.WeatherService, logger zerolog.Logger) *WeatherController {
	return &WeatherController{
		weatherService: weatherService,
		logger:         logger,
	}
}

// Get handles the weather lookup
// @Summary Get current weather for a city
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} dto.WeatherResponse
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 503 {object} dto.ErrorResponse "Weather provider unavailable"
// @Router /weather [get]
func (c *WeatherController) Get(ctx *gin.Context) {
	resp, err := c.weatherService.GetCurrent(ctx.Request.Context(), ctx.Query("city"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
