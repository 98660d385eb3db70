package http

import (
	"errors"
	"net/http"
	"strings"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tenantContextKey = "tenant"

type tenantClaims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
}

// TenantFromToken verifies an HS256 bearer token and returns the tenant it names.
func TenantFromToken(token, secret string) (tenant.Context, error) {
	if strings.TrimSpace(secret) == "" {
		return tenant.Context{}, errors.New("jwt secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &tenantClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return tenant.Context{}, err
	}
	if !parsed.Valid {
		return tenant.Context{}, errors.New("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.TenantID)
	if err != nil {
		return tenant.Context{}, err
	}
	return tenant.New(id)
}

// TenantMiddleware rejects requests without a valid bearer token carrying a tenant_id claim.
func TenantMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse(http.StatusUnauthorized, "authentication required"))
			}
			tc, err := TenantFromToken(token, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse(http.StatusUnauthorized, "invalid credentials"))
			}
			c.Set(tenantContextKey, tc)
			return next(c)
		}
	}
}

// tenantOf returns the zero Context when the middleware did not run, which every use
// case rejects with tenant.ErrNotAuthenticated.
func tenantOf(c echo.Context) tenant.Context {
	tc, _ := c.Get(tenantContextKey).(tenant.Context)
	return tc
}

func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
