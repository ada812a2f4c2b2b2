package middleware

import (
	"aegnt-unltd/pkg/log"
)

// Middleware holds the gin middlewares shared by all routes.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the middleware set. A non-positive perMin disables rate
// limiting.
func New(l log.Logger, perMin int) Middleware {
	mw := Middleware{l: l}
	if perMin > 0 {
		mw.limiter = newRateLimiter(perMin)
	}
	return mw
}
