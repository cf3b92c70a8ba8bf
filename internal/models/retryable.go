package models

import (
	"net/http"
)

// RetryableHTTPCodes are the statuses resty clients retry before giving up.
var RetryableHTTPCodes = map[int]struct{}{
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusInternalServerError: {},
	http.StatusGatewayTimeout:      {},
	http.StatusTooManyRequests:     {},
}

func IsRetryableHTTPCode(code int) bool {
	_, ok := RetryableHTTPCodes[code]
	return ok
}
