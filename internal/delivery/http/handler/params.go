package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/pkg/utils"
)

// queryFloat reads an optional numeric query parameter.
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, ok := utils.CoerceFloat(raw)
	if !ok {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{key: raw})
	}
	return &v, nil
}

// queryDays parses a comma separated list of weekdays, e.g. "1,3,5".
func queryDays(c *fiber.Ctx, key string) ([]int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := cast.ToIntE(p)
		if err != nil {
			return nil, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{key: raw})
		}
		days = append(days, d)
	}
	return days, nil
}

// queryInt reads an optional integer query parameter. Absent means def;
// anything non-numeric is reported as invalid rather than silently defaulted.
func queryInt(c *fiber.Ctx, key string, def int, invalid *errors.AppError) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, invalid.WithDetails(map[string]interface{}{key: raw})
	}
	return v, nil
}

func boolPtr(v bool) *bool {
	return &v
}
