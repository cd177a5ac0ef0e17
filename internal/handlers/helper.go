package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseStringIDParam returns the trimmed path parameter, or writes a 400 and
// returns "" when it is blank.
func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}
