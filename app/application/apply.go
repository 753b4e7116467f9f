package application

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"bitwise74/job-portal/pkg/util"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ApplicationApply(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	jobID, err := util.ParamID(c, "id")
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	// The body is optional, a bare POST applies without a cover letter
	var data service.ApplyInput
	if err := c.ShouldBindJSON(&data); err != nil && !errors.Is(err, io.EOF) {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	app, err := d.Applications.Apply(c.Request.Context(), actor, jobID, data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": app,
	})
}
