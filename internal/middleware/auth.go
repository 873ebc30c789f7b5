package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/cache"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/config"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	TokenKey  = "token"
)

// Identity is the verified session identity cached per token.
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

// SessionCache caches verified tokens so a request does not re-verify the
// same JWT every time. Logout deletes the entry explicitly.
type SessionCache = cache.TTLCache[string, Identity]

// AuthMiddleware verifies the provider-issued access token (HS256, secret
// shared with the hosted auth service) and stores the identity in the
// request context. The token comes from the Authorization header, falling
// back to the session cookie set at login.
func AuthMiddleware(cfg *config.Config, sessions *SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c, cfg.SessionCookieName)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing credentials"})
			c.Abort()
			return
		}

		if identity, ok := sessions.Get(tokenString); ok {
			setIdentity(c, tokenString, identity)
			c.Next()
			return
		}

		identity, err := VerifyToken(tokenString, cfg.SupabaseJWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid token",
				Message: err.Error(),
			})
			c.Abort()
			return
		}

		sessions.Set(tokenString, identity)
		setIdentity(c, tokenString, identity)
		c.Next()
	}
}

// VerifyToken parses and validates an HS256 access token and extracts the
// identity from its claims.
func VerifyToken(tokenString, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if secret == "" {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, jwt.ErrTokenInvalidSubject
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, jwt.ErrTokenInvalidSubject
	}

	return Identity{UserID: userID, Role: roleFromClaims(claims)}, nil
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		tokenString := strings.TrimSpace(parts[1])
		return tokenString, tokenString != ""
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}

// roleFromClaims reads the account role out of the provider's user_metadata
// claim. Anything missing or unknown becomes guest.
func roleFromClaims(claims jwt.MapClaims) models.Role {
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok {
			return models.ParseRole(role)
		}
	}
	return models.RoleGuest
}

func setIdentity(c *gin.Context, tokenString string, identity Identity) {
	c.Set(UserIDKey, identity.UserID.String())
	c.Set(RoleKey, string(identity.Role))
	c.Set(TokenKey, tokenString)
}
