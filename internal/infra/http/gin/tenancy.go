package ginserver

import (
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
)

const tenantKey = "tenant_id"

// TenantRequired resolves the acting tenant from the X-Tenant-ID header set
// by the upstream gateway. Every engine route is tenant-scoped.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
		if tenant == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "VALIDATION",
				"message": "missing X-Tenant-ID header",
			})
			return
		}
		c.Set(tenantKey, tenant)
		c.Next()
	}
}

func tenantID(c *gin.Context) string {
	return c.GetString(tenantKey)
}

// parseDate accepts the wire format for calendar dates, with RFC 3339 as a
// fallback for clients sending full timestamps.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
