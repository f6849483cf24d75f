package middleware

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
)

const (
	claimsContextKey = "claims"
	userContextKey   = "currentUser"
)

// IdentityResolver loads the user a token was issued to.
type IdentityResolver interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Auth guards protected routes. It requires an "Authorization: Bearer" header
// carrying a valid, unexpired session token whose user still exists, and
// stores that user on the context. Every rejection is the same generic 401.
func Auth(jwtService *auth.JWTService, users IdentityResolver) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized(err)
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*auth.Claims)
			if !ok {
				return unauthorized(errors.New("claims missing from context"))
			}

			user, err := users.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return unauthorized(err)
				}
				return apperrors.EchoError(err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// CurrentUser returns the identity admitted by Auth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok && user != nil
}

func unauthorized(cause error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "unauthorized",
		Code:  "UNAUTHORIZED",
	}).SetInternal(cause)
}
