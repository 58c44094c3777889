package middleware

import (
	"errors"
	"strings"

	"github.com/marti-georgiev/camprating/config"
	"github.com/marti-georgiev/camprating/helper"
	"github.com/marti-georgiev/camprating/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var HTTPHelper = &helper.HTTPHelper{}

const identityKey = "identity"

type Claims struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved identity on the context for handlers to pass along explicitly.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := identityFromRequest(c)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(identityKey, *ident)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but never aborts.
// The home page uses it: anonymous callers browse, admins also get stats.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := identityFromRequest(c); err == nil {
			c.Set(identityKey, *ident)
		}
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			HTTPHelper.SendUnauthorizedError(c, "User identity not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		for _, role := range roles {
			if ident.HasRole(role) {
				c.Next()
				return
			}
		}

		HTTPHelper.SendForbiddenError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
		c.Abort()
	}
}

// GetIdentity returns the authenticated caller stored by AuthMiddleware or
// OptionalAuth.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	ident, ok := value.(models.Identity)
	return ident, ok
}

func identityFromRequest(c *gin.Context) (*models.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.New("Bearer token required")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, errors.New("Invalid token: " + err.Error())
	}
	if !token.Valid {
		return nil, errors.New("Token is not valid")
	}

	return &models.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}
