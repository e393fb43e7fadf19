package middleware

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/auth"
	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// ActorLocalKey is the key used to store the authenticated user in Fiber's
// context locals.
const ActorLocalKey = "actor"

// ActorFromCtx returns the authenticated user stored by Auth.Authenticate,
// or nil for anonymous requests.
func ActorFromCtx(c *fiber.Ctx) *model.User {
	if v := c.Locals(ActorLocalKey); v != nil {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// Auth verifies bearer tokens against the identity service and resolves the
// local profile carrying the authorization role.
type Auth struct {
	verifier auth.Verifier
	users    repository.UserRepository
}

// NewAuth constructs the auth middleware.
func NewAuth(verifier auth.Verifier, users repository.UserRepository) *Auth {
	return &Auth{verifier: verifier, users: users}
}

// Authenticate extracts the bearer token, verifies it, loads the matching
// profile and stores it in context locals. Missing or invalid credentials and
// unknown subjects all yield 401.
func (a *Auth) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		identity, err := a.verifier.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "identity service unavailable")
		}

		user, err := a.users.FindByAuthID(c.UserContext(), identity.Subject)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fiber.NewError(fiber.StatusUnauthorized, "no active profile")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "profile lookup failed")
		}

		c.Locals(ActorLocalKey, user)
		return c.Next()
	}
}

// Require allows the request through only when the actor's role is in the
// given set. It must run after Authenticate.
func (a *Auth) Require(roles ...model.UserType) fiber.Handler {
	allowed := make(map[model.UserType]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if actor == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[actor.Type]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff allows HELPDESK, ADMIN and SUPER_ADMIN.
func (a *Auth) RequireStaff() fiber.Handler {
	return a.Require(model.UserTypeHelpdesk, model.UserTypeAdmin, model.UserTypeSuperAdmin)
}

// RequireAdmin allows ADMIN and SUPER_ADMIN.
func (a *Auth) RequireAdmin() fiber.Handler {
	return a.Require(model.UserTypeAdmin, model.UserTypeSuperAdmin)
}
