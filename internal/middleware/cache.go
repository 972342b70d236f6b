package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Private        bool
	MustRevalidate bool
	Vary           []string
}

// DefaultCacheConfig suits responses computed from reference data only,
// such as axis geometry and cadastral lookups.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge: 3600,
		Vary:   []string{"Accept"},
	}
}

// Cache replaces the global no-store directive on routes that carry no
// personal data. Only GET responses are affected; requests that failed
// binding fall back to no-store.
func Cache(config CacheConfig) gin.HandlerFunc {
	directives := []string{"public"}
	if config.Private {
		directives[0] = "private"
	}
	if config.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}
	if config.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	value := strings.Join(directives, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		c.Header("Cache-Control", value)
		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.Header("Cache-Control", "no-store")
		}
	}
}
