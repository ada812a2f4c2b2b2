package middleware

import "time"

const (
	HeaderRequestID = "X-Request-ID"

	limiterCacheSize = 1000
	limiterTTL       = 5 * time.Minute

	LogPrefixRateLimit = "internal.middleware.RateLimit"
)
