package job

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"bitwise74/job-portal/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JobUpdate(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	id, err := util.ParamID(c, "id")
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	var data service.JobPatch
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	job, err := d.Jobs.Update(c.Request.Context(), actor, id, data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job updated successfully",
		"job":     job,
	})
}
