package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path parameter. On failure it writes the 400
// response itself and returns ok=false.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid id")
		return 0, false
	}
	return uint(value), true
}
