package middleware

import (
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter caps the request body. Handlers see an *http.MaxBytesError
// from binding once the cap is crossed and report it through apierr.FromBind.
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for requests that announce their size
		if c.Request.ContentLength > maxBytes {
			apierr.Respond(c, apierr.TooLarge("Request body size exceeds limit"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
