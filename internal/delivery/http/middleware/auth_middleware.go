package middleware

import (
	"slices"
	"strings"

	"market/config"
	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	"market/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	ctxKeyUserID = "userID"
	ctxKeyRoles  = "roles"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate validates the bearer token and stores the caller's identity
// and roles on the request context. It never touches the database, the
// access token alone identifies the caller.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", err.Error())
		}

		userID, roles, err := m.parseAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", err.Error())
		}

		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyRoles, roles)

		return next(c)
	}
}

// RequireRole gates a route group on one role. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(GetRoles(c), requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Requires '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", errors.New("Invalid token format, must be Bearer token")
	}

	return tokenString, nil
}

func (m *AuthMiddleware) parseAccessToken(tokenString string) (uuid.UUID, []string, error) {
	token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
	if err != nil || !token.Valid {
		return uuid.Nil, nil, errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, nil, errors.New("Failed to parse token claims")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, nil, errors.New("User ID missing from token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, nil, errors.New("Invalid user ID format in token")
	}

	rolesClaim, _ := claims["roles"].([]any)
	roles := make([]string, 0, len(rolesClaim))
	for _, r := range rolesClaim {
		if roleStr, ok := r.(string); ok {
			roles = append(roles, roleStr)
		}
	}

	return userID, roles, nil
}

// GetUserID returns the authenticated user's ID set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ctxKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetRoles returns the authenticated user's roles set by Authenticate.
func GetRoles(c echo.Context) []string {
	roles, _ := c.Get(ctxKeyRoles).([]string)

	return roles
}

// GetCaller resolves the authenticated actor for use case calls. The first
// valid role from the token is the role the caller acts under.
func GetCaller(c echo.Context) (service.Caller, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return service.Caller{}, false
	}

	roles := entity.RolesFromStrings(GetRoles(c))
	if len(roles) == 0 {
		return service.Caller{}, false
	}

	return service.Caller{ID: userID, Role: roles[0]}, true
}
