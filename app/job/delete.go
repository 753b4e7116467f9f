package job

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"bitwise74/job-portal/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JobDelete(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	id, err := util.ParamID(c, "id")
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	if err := d.Jobs.Delete(c.Request.Context(), actor, id); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted successfully",
	})
}
