// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dyilmaz/campushub/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter. It writes the
// 400 response itself so handlers can just return on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
