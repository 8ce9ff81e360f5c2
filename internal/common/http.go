package common

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the caller address without its port. The API router runs
// chi's RealIP middleware first, so RemoteAddr already reflects
// X-Forwarded-For or X-Real-IP when a proxy set them.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
