package job

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JobFetch(c *gin.Context, d *internal.Deps) {
	id, err := util.ParamID(c, "id")
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	job, err := d.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
