package application

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ApplicationList(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	var f service.ApplicationFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		apierr.Respond(c, apierr.BadRequest("Invalid query parameters"))
		return
	}

	list, err := d.Applications.List(c.Request.Context(), actor, f)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
