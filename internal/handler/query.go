package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramValue := c.Query(name)

	if paramValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramValue)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramValue, "error", err)
		return defaultValue
	}

	return parsedValue
}

// getQueryInt64 returns nil when the parameter is absent or not a number.
func getQueryInt64(name string, c *gin.Context) *int64 {
	paramValue := c.Query(name)

	if paramValue == "" {
		return nil
	}

	parsedValue, err := strconv.ParseInt(paramValue, 10, 64)
	if err != nil {
		slog.Warn("invalid query parameter, ignoring", "param", name, "value", paramValue, "error", err)
		return nil
	}

	return &parsedValue
}
