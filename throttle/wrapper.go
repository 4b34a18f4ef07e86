package throttle

import (
	"net/http"
	"time"

	"github.com/invoicepress/invoicepress/requests"
	"github.com/invoicepress/invoicepress/responses"
	"github.com/invoicepress/invoicepress/routing"
)

// LimitWrapper rate-limits a handler per client IP against the named group.
func (s *BucketStore) LimitWrapper(groupID string) routing.HandlerWrapper {
	return routing.WrapperFunc(func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Allow(groupID, requests.GetClientIP(r), time.Now()) {
				responses.WriteSimpleErrorJSON(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			inner.ServeHTTP(w, r)
		})
	})
}
