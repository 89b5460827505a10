package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-catalog-api/internal/audit"
	"go-catalog-api/pkg/jwt"
)

// RequestContext resolves actor identity, client IP and change origin
// for the audit trail and threads them through the request's context.
// Identity here is attribution only: a request without any of it still
// proceeds, carrying the sentinels.
func RequestContext(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := audit.RequestContext{
			IP:     audit.ClientIP(func(name string) string { return c.Get(name) }, c.IP()),
			Actor:  resolveActor(c),
			Origin: resolveOrigin(c),
		}

		requestID := uuid.NewString()
		c.Locals("request_id", requestID)
		log.Debug("request context resolved",
			zap.String("request_id", requestID),
			zap.String("ip", rc.IP),
			zap.String("actor", rc.Actor),
			zap.String("origin", rc.Origin))

		c.SetUserContext(audit.WithRequestContext(c.UserContext(), rc))
		return c.Next()
	}
}

// resolveActor prefers the authenticated principal's name, then the
// actor header, then the unknown-user sentinel.
func resolveActor(c *fiber.Ctx) string {
	if name := jwt.ActorName(c.Get(fiber.HeaderAuthorization)); name != "" {
		return name
	}
	if v := c.Get(audit.HeaderActor); v != "" {
		return v
	}
	return audit.UnknownUser
}

func resolveOrigin(c *fiber.Ctx) string {
	if v := c.Get(audit.HeaderOrigin); v != "" {
		return v
	}
	return audit.UnknownOrigin
}
