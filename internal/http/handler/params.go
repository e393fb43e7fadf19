package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var errBadPageParam = errors.New("invalid pagination parameter")

// pageParams reads the 1-based page/limit query parameters with defaults.
func pageParams(c *fiber.Ctx) (page, limit int, err error) {
	page, err = strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, errBadPageParam
	}
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, errBadPageParam
	}
	return page, limit, nil
}

// boolQuery reads an optional boolean query parameter; nil means absent.
func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
