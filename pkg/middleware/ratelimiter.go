package middleware

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"

	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/observability"
)

// MessageRateLimited is returned when a client exceeds its request budget
const MessageRateLimited = "Too many signup attempts, please try again later."

// RateLimit allows maxPerMinute requests per client IP. Zero disables it.
// The socket address is the key; forwarded headers are never consulted
// ahead of it.
func RateLimit(maxPerMinute float64, metrics *observability.Metrics) gin.HandlerFunc {
	if maxPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	perSecond := maxPerMinute / 60.0
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			if metrics != nil {
				metrics.RateLimitedTotal.Inc()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: MessageRateLimited})
			return
		}
		c.Next()
	}
}
