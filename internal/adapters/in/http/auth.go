package http

import (
	"strings"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is where the resolved access.Context lives on the echo
// context after authentication.
const actorContextKey = "actor"

// tokenClaims is the JWT payload. The subject is the user id; the token
// binds the user to exactly one organization and the role held there.
type tokenClaims struct {
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	PlatformAdmin  bool   `json:"platform_admin,omitempty"`

	jwt.RegisteredClaims
}

// AuthMiddleware resolves the tenant context from a Bearer token. Every
// failure mode (missing, malformed, bad signature, expired, unusable
// claims) is reported the same way, as unauthenticated.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := resolveActor(ctx.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return respondError(ctx, err)
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func resolveActor(header string, secret []byte) (access.Context, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return access.Context{}, errs.NewUnauthenticatedError()
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(
		strings.TrimPrefix(header, prefix),
		claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return access.Context{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return access.Context{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	organizationID, err := kernel.UUIDFromString(claims.OrganizationID)
	if err != nil {
		return access.Context{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	actor, err := access.NewContext(userID, organizationID, access.Role(claims.Role), claims.PlatformAdmin)
	if err != nil {
		return access.Context{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	return actor, nil
}

// actorFrom returns the authenticated actor stored by AuthMiddleware.
func actorFrom(ctx echo.Context) (access.Context, error) {
	actor, ok := ctx.Get(actorContextKey).(access.Context)
	if !ok {
		return access.Context{}, errs.NewUnauthenticatedError()
	}
	return actor, nil
}

// verifyClaimedOrganization compares an organization id arriving in a
// request body against the token's. An empty claim is fine; a mismatch is
// denied, never silently overridden.
func verifyClaimedOrganization(actor access.Context, claimed string) error {
	if claimed == "" {
		return nil
	}

	claimedID, err := kernel.UUIDFromString(claimed)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization_id", err)
	}

	if !claimedID.IsEqual(actor.OrganizationID) {
		return errs.NewDeniedError(errs.DenyReasonCrossTenant)
	}

	return nil
}
