package ratelimit

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// IPRateLimit returns middleware that limits requests by client IP. It is
// applied to the signup and signin routes to slow credential stuffing.
func (m *Module) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			// Fail closed when the client IP cannot be determined
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unable to determine client address",
			})
		}

		result, err := m.limiter.Allow(c.UserContext(), ip)
		if err != nil {
			// Fail open on limiter errors so Redis trouble does not take
			// down login
			log.Printf("[ratelimit] limiter error for ip=%s: %v", ip, err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.RequestsPerWindow))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds()) + 1
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, try again later",
			})
		}

		return c.Next()
	}
}
