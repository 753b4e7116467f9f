package job

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JobCreate(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	var data service.JobInput
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	job, err := d.Jobs.Create(c.Request.Context(), actor, data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job created successfully",
		"job":     job,
	})
}
