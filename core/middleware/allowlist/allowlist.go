package allowlist

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Config holds the networks allowed to reach the server.
type Config struct {
	Allowed []*net.IPNet
	// OnDeny is called with the rejected client address.
	OnDeny func(c *fiber.Ctx, ip string)
}

// New rejects clients outside cfg.Allowed with 403. An empty list allows all.
// The client address is the first X-Forwarded-For entry when present.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(cfg.Allowed) == 0 {
			return c.Next()
		}

		ip := ClientIP(c)
		if parsed := net.ParseIP(ip); parsed != nil {
			for _, n := range cfg.Allowed {
				if n.Contains(parsed) {
					return c.Next()
				}
			}
		}

		if cfg.OnDeny != nil {
			cfg.OnDeny(c, ip)
		}
		return fiber.ErrForbidden
	}
}

// ClientIP returns the first X-Forwarded-For address, or the peer address.
func ClientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return c.IP()
}
