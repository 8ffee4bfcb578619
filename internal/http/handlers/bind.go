package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
)

// bindJSON binds the request body into dst and rejects bodies carrying any of
// the forbidden keys.
func bindJSON(c *gin.Context, dst any, forbidden ...string) error {
	if len(forbidden) > 0 {
		var raw map[string]any
		if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
			return apierr.BadRequest("invalid JSON body: %v", err)
		}
		for _, key := range forbidden {
			if _, ok := raw[key]; ok {
				return apierr.BadRequest("Not allowed")
			}
		}
	}
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		return apierr.BadRequest("invalid request: %v", err)
	}
	return nil
}

func paramID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.BadRequest("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

func requiredFloat(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, apierr.BadRequest("%s is required", name)
	}
	return *v, nil
}
