package middleware

import "github.com/gin-gonic/gin"

// Headers added by hosting platforms that should never reach clients.
var platformHeaders = []string{
	"Server", "X-Powered-By", "X-Railway-Edge", "X-Railway-Request-Id",
	"Via", "X-Vercel-Cache", "X-Vercel-Id", "Cf-Ray", "Cf-Cache-Status",
	"X-Served-By", "X-Cache", "X-Timer", "X-Fastly-Request-Id",
}

// SecurityHeaders makes every response look like it came from the internal
// corporate route-management system rather than a public PaaS.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, name := range platformHeaders {
			h.Del(name)
		}

		h.Set("Server", "Microsoft-IIS/10.0")
		h.Set("X-Powered-By", "ASP.NET")

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		h.Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		c.Next()
	}
}
