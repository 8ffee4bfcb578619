package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got RouteInfo
	capture := func(c *gin.Context) { got = Route(c) }
	r.GET("/companies", capture)
	r.GET("/companies/:code", capture)
	r.POST("/companies", capture)
	r.PUT("/invoices/:id", capture)
	r.DELETE("/invoices/:id", capture)
	r.POST("/industries/:i_code", capture)
	r.GET("/healthcheck", capture)
	r.NoRoute(capture)

	cases := []struct {
		method, path string
		want         RouteInfo
	}{
		{http.MethodGet, "/companies", RouteInfo{"companies", "list"}},
		{http.MethodGet, "/companies/ibm", RouteInfo{"companies", "get"}},
		{http.MethodPost, "/companies", RouteInfo{"companies", "create"}},
		{http.MethodPut, "/invoices/3", RouteInfo{"invoices", "update"}},
		{http.MethodDelete, "/invoices/3", RouteInfo{"invoices", "delete"}},
		{http.MethodPost, "/industries/tech", RouteInfo{"industries", "associate"}},
		{http.MethodGet, "/healthcheck", RouteInfo{"healthcheck", "list"}},
		{http.MethodPatch, "/companies/ibm", RouteInfo{"unmatched", "patch"}},
	}
	for _, tc := range cases {
		got = RouteInfo{}
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, nil))
		if got != tc.want {
			t.Fatalf("%s %s: got %+v, want %+v", tc.method, tc.path, got, tc.want)
		}
	}
}
