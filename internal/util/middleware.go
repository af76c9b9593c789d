package util

import (
	"net/http"
	"strings"
)

// GatewayPrefix is added by the ingress gateway in front of the API routes.
const GatewayPrefix = "/api/profit-planner"

// GatewayApiRewrite strips GatewayPrefix so gateway traffic reaches the same routes as direct calls.
// Only whole path segments match: "/api/profit-planner-x" is left alone.
func GatewayApiRewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rest, ok := stripGatewayPrefix(r.URL.Path); ok {
			r.URL.Path = rest
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

func stripGatewayPrefix(path string) (string, bool) {
	rest, found := strings.CutPrefix(path, GatewayPrefix)
	switch {
	case !found:
		return path, false
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	}
	return path, false
}
