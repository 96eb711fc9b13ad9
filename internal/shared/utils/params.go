package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"loftwork/internal/shared/errors"
)

// ParseUintParam parses a numeric ID from a URL path parameter.
// entityName is used in error messages (e.g., "ticket", "property").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid %s ID: %s", entityName, raw),
		)
	}

	return uint(id), nil
}

// ParseUintQuery parses an optional numeric query parameter. Returns
// nil when the parameter is absent.
func ParseUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %s", name, raw))
	}

	u := uint(v)
	return &u, nil
}
