package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auth-api/internal/service"
)

const (
	// SessionCookie es la cookie HTTP-only que transporta el token de sesión.
	SessionCookie = "authToken"

	authClaimsKey = "auth_claims"
)

// SessionAuthMiddleware valida el token de sesión de la cookie y guarda los
// claims en el contexto. Firma inválida o token expirado cortan con 401.
func SessionAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "session not configured", "success": false})
			c.Abort()
			return
		}

		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "please login", "success": false})
			c.Abort()
			return
		}

		claims, err := jwtSvc.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session", "success": false})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims de sesión desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
