package llmprovider

import (
	"net/http"
	"time"
)

const (
	LogPrefixManager = "pkg.llmprovider.Manager"
	LogPrefixFactory = "pkg.llmprovider.InitializeProviders"
)

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
