package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/response"
)

// IsSameOrigin compares the Origin (or Referer) host with the host the request was sent to.
// Requests carrying neither header are allowed.
func IsSameOrigin(r *http.Request) bool {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return true
	}

	source := r.Header.Get("Origin")
	if source == "" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return true
	}

	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.ToLower(u.Host) == host
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// SameOrigin rejects cross-site state-changing requests with 403 FORBIDDEN_ORIGIN.
func SameOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isUnsafeMethod(c.Request.Method) && !IsSameOrigin(c.Request) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN_ORIGIN", "Cross-site request rejected")
			return
		}
		c.Next()
	}
}
