package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestRecorder receives one observation per handled request.
type RequestRecorder interface {
	RecordAPIRequest(route, method string, status int, duration time.Duration)
}

// Metrics records request counts and latency labelled by route pattern.
func Metrics(recorder RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// route pattern keeps label cardinality bounded
		route := c.Route().Path
		if route == "" || route == "/" {
			route = "unmatched"
		}
		recorder.RecordAPIRequest(route, c.Method(), status, time.Since(start))
		return err
	}
}
