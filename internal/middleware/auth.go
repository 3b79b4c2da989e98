package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rutas_tracker/internal/models"
)

// SessionCookie carries the signed session token for browser flows.
// API clients may send the same token as a Bearer header instead.
const SessionCookie = "rutas_session"

const identityKey = "identity"

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// Identity is the request-scoped authenticated user.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

// GenerateToken signs a session token for the given user.
func GenerateToken(userID uint, username string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

var errInvalidToken = errors.New("invalid or expired token")

// ParseToken validates tokenStr and extracts the identity bound to it.
func ParseToken(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, errInvalidToken
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return Identity{
		UserID:   uint(userID),
		Username: username,
		Role:     models.Role(role),
	}, nil
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Authenticate resolves the caller's identity without enforcing it.
func Authenticate(c *gin.Context) (Identity, bool) {
	if v, exists := c.Get(identityKey); exists {
		if ident, ok := v.(Identity); ok {
			return ident, true
		}
	}
	tokenStr := sessionToken(c)
	if tokenStr == "" {
		return Identity{}, false
	}
	ident, err := ParseToken(tokenStr)
	if err != nil {
		return Identity{}, false
	}
	c.Set(identityKey, ident)
	return ident, true
}

// Verdict is the structured result of a guard check. Translating it into a
// redirect or a JSON error stays at the HTTP boundary.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictUnauthenticated
	VerdictForbidden
)

// Check resolves the caller's identity and compares it against min.
func Check(c *gin.Context, min models.Role) (Identity, Verdict) {
	ident, ok := Authenticate(c)
	if !ok {
		return Identity{}, VerdictUnauthenticated
	}
	if !ident.Role.AtLeast(min) {
		return ident, VerdictForbidden
	}
	return ident, VerdictOK
}

// RequireAuth ensures a valid session is present.
func RequireAuth() gin.HandlerFunc {
	return RequireMinRole(models.RoleUser)
}

// RequireMinRole ensures the session's role grants at least min. Page
// requests get a flash notice and a redirect; JSON requests get a
// structured error.
func RequireMinRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, verdict := Check(c, min)
		switch verdict {
		case VerdictOK:
			c.Set(identityKey, ident)
			c.Next()
		case VerdictUnauthenticated:
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión requerida"})
				return
			}
			SetFlash(c, "info", "Por favor inicie sesión para acceder a esta página.")
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
		case VerdictForbidden:
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permisos insuficientes"})
				return
			}
			SetFlash(c, "error", "No tienes permisos para acceder a esta página")
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
		}
	}
}

// CurrentIdentity returns the identity stored by the guard middleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// WantsJSON reports whether the request expects a JSON response.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return c.ContentType() == "application/json"
}
