package middleware

import (
	"net/http"

	"work-exchange-api/core/constants"
	"work-exchange-api/core/controller"
	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	secret string
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: secret}
}

// AuthMiddleware requires a valid bearer token and stores the caller as an
// entity.Actor on the echo context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}
			token, ok := utils.GetTokenFromHeader(header)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidTokenFormat, "invalid authorization header")
			}
			if err := m.authenticate(c, token); err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}

// OptionalAuth attaches the actor when a valid token is present and lets
// anonymous requests through otherwise.
func (m *Middleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization)); ok {
				if err := m.authenticate(c, token); err != nil {
					logger.Debug("Middleware:OptionalAuth:IgnoredToken", "error", err)
				}
			}
			return next(c)
		}
	}
}

func (m *Middleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "unauthorized")
			}
			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}
			return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "insufficient role")
		}
	}
}

func (m *Middleware) authenticate(c echo.Context, token string) error {
	claims, err := utils.ValidateAndParseToken(token, m.secret)
	if err != nil {
		return err
	}
	role := entity.Role(claims.Role)
	if !role.Valid() {
		role = entity.RoleUser
	}
	c.Set(constants.ContextTokenData, claims)
	c.Set(constants.ContextActor, entity.Actor{ID: claims.UserID, Role: role})
	return nil
}

func ActorFromContext(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(constants.ContextActor).(entity.Actor)
	return actor, ok
}
