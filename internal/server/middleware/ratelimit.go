package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// loginRate throttles the credential endpoint per client IP. The rest of
// the API is not rate limited; only login is a brute-force target.
const loginRate = "10-M"

// LoginRateLimit builds the per-IP limiter for the login route, counting
// in process memory.
func LoginRateLimit() (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(loginRate)
	if err != nil {
		return nil, fmt.Errorf("parse rate: %w", err)
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate)), nil
}
