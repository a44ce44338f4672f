package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/basit438/popacart-backend/configs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "userID"
	ctxRole   = "userRole"
)

type Authz struct {
	cfg configs.Config
}

func NewAuthz(cfg configs.Config) *Authz {
	return &Authz{cfg: cfg}
}

// authenticate validates the bearer token and stashes the caller's identity
// in the gin context. It never advances the handler chain; the caller decides
// whether to proceed. Returns false after aborting the request.
func (a *Authz) authenticate(c *gin.Context) bool {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		unauth(c, "invalid_request", "missing bearer token")
		return false
	}

	raw := strings.TrimPrefix(auth, "Bearer ")
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(a.cfg.Security.JWTSecret), nil
	}, jwt.WithLeeway(30*time.Second)) // small clock skew

	if err != nil || !token.Valid {
		unauth(c, "invalid_token", "invalid jwt")
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		unauth(c, "invalid_token", "claims parsing error")
		return false
	}
	if claims["iss"] != a.cfg.Security.Issuer || claims["aud"] != a.cfg.Security.Audience {
		unauth(c, "invalid_token", "iss/aud mismatch")
		return false
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		unauth(c, "invalid_token", "uid claim missing")
		return false
	}
	role, _ := claims["role"].(string)

	c.Set(ctxUserID, uid)
	c.Set(ctxRole, role)
	return true
}

// Authenticate gates a route on a valid bearer token. Every cart/order/
// wishlist route sits behind this.
func (a *Authz) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// Require authenticates and then insists on one of the given roles. The role
// check happens before the chain advances, so the protected handler never
// runs for an insufficient role.
func (a *Authz) Require(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		role := Role(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		forbidden(c, "insufficient_role", "access denied")
	}
}

// UserID returns the authenticated caller's id, empty when unauthenticated.
func UserID(c *gin.Context) string {
	v, _ := c.Get(ctxUserID)
	s, _ := v.(string)
	return s
}

func Role(c *gin.Context) string {
	v, _ := c.Get(ctxRole)
	s, _ := v.(string)
	return s
}

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": desc})
}

func forbidden(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": desc})
}
