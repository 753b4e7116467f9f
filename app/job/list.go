package job

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JobList(c *gin.Context, d *internal.Deps) {
	var f service.JobFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		apierr.Respond(c, apierr.BadRequest("Invalid query parameters"))
		return
	}

	list, err := d.Jobs.List(c.Request.Context(), f)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
