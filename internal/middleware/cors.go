// Package middleware provides gin middleware for the channel media API.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// MediaCORS sets the fixed CORS policy of the public media endpoints. The
// endpoints are served to arbitrary origins, so the policy is a wildcard and
// part of the API contract. Preflight requests are answered by the explicit
// OPTIONS routes.
func MediaCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}
