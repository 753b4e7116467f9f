package util

import (
	"bitwise74/job-portal/pkg/apierr"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID reads a numeric path parameter
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.BadRequest("Invalid ID provided")
	}

	return uint(id), nil
}
