package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request's ray id in the response.
const Header = "X-Ray-Id"

// New returns a middleware that assigns every request a ray id, storing it
// in locals for log correlation and echoing it in the response header. An
// incoming X-Ray-Id is honored so ids survive proxy hops.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
