package profile

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProfileUpload takes the multipart field "file" and stores it as the
// caller's CV or company logo.
func ProfileUpload(c *gin.Context, d *internal.Deps, kind service.UploadKind) {
	actor, _ := middleware.Identity(c)

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			apierr.Respond(c, apierr.BadRequest("No file provided"))
			return
		}

		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		apierr.Respond(c, fmt.Errorf("failed to open multipart file, %w", err))
		return
	}
	defer f.Close()

	view, err := d.Profiles.Upload(c.Request.Context(), actor, kind, f)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"user":    view.User,
		"profile": view.Profile,
	})
}
