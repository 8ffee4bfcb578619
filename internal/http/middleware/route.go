package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteInfo names the API resource a request hit and what it did to it.
type RouteInfo struct {
	Resource string
	Op       string
}

// Route classifies the matched route. /companies/:code under PUT is
// {companies, update}; requests that matched no route are {unmatched, <method>}.
func Route(c *gin.Context) RouteInfo {
	method := c.Request.Method
	pattern := strings.Trim(c.FullPath(), "/")
	if pattern == "" {
		return RouteInfo{Resource: "unmatched", Op: strings.ToLower(method)}
	}
	segments := strings.Split(pattern, "/")
	item := len(segments) > 1 && strings.HasPrefix(segments[1], ":")

	info := RouteInfo{Resource: segments[0]}
	switch {
	case method == http.MethodGet && item:
		info.Op = "get"
	case method == http.MethodGet:
		info.Op = "list"
	case method == http.MethodPost && item:
		info.Op = "associate"
	case method == http.MethodPost:
		info.Op = "create"
	case method == http.MethodPut:
		info.Op = "update"
	case method == http.MethodDelete:
		info.Op = "delete"
	default:
		info.Op = strings.ToLower(method)
	}
	return info
}
