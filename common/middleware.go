package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var (
	ERR_TOO_MANY_REQUESTS = errors.New("err_limit_exceeded")
)

// LimiterMiddleware period: "S"<Second>,"M"<Minute>,"H"<Hour>,"D"<Day>; limit: limit frequency.
// Signed requests are keyed by actor, the rest by origin and ip.
// isWhitelisted is checked against each part of the key and may be nil.
func LimiterMiddleware(limit int, period string, isWhitelisted func(string) bool) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(fmt.Sprintf("%d-%s", limit, period))
	if err != nil {
		panic(err)
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": ERR_TOO_MANY_REQUESTS.Error(),
			})
		}),
		mgin.WithKeyGetter(limiterKey),
		mgin.WithExcludedKey(func(key string) bool {
			if isWhitelisted == nil {
				return false
			}
			for _, part := range strings.Split(key, keySep) {
				if isWhitelisted(part) {
					return true
				}
			}
			return false
		}))
}

const (
	keySep = ","

	// must match schema.HeaderActor
	actorHeader = "X-Authorized-Actor"
)

// limiterKey is "actor:<name>" for signed requests, else origin + "," + ip.
func limiterKey(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return "actor:" + actor
	}
	return c.Request.Header.Get("origin") + keySep + c.ClientIP()
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, "+actorHeader+", accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
