package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var secretKey []byte

func SetSecret(secret string) {
	secretKey = []byte(secret)
}

func GetSecret() []byte {
	return secretKey
}

// AuthMiddleware valida el JWT del header Authorization o de la cookie y
// deja userId, email e isAdmin en el contexto.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		var err error

		// 1. INTENTO PRINCIPAL: header "Authorization: Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// 2. INTENTO SECUNDARIO: cookie
		if tokenString == "" {
			tokenString, err = c.Cookie("token")
		}

		if tokenString == "" || err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado: token ausente"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return GetSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Claims inválidos"})
			c.Abort()
			return
		}

		userIDStr, _ := claims["userId"].(string)
		if userIDStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "userId inválido"})
			c.Abort()
			return
		}
		if _, err := primitive.ObjectIDFromHex(userIDStr); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Formato de userId inválido"})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email inválido"})
			c.Abort()
			return
		}

		isAdmin, _ := claims["isAdmin"].(bool)

		c.Set("userId", userIDStr)
		c.Set("email", email)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

// AdminMiddleware exige la capacidad de administrador resuelta en el login.
// El chequeo nunca compara un correo literal.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := c.Get("isAdmin")
		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Sólo el administrador puede realizar esta acción"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func SetAuthCookie(c *gin.Context, tokenString string, duration time.Duration) {
	appEnv := os.Getenv("APP_ENV")

	maxAge := int(duration.Seconds())

	// Dejar domain vacío: compartir entre dominios distintos falla si se fija.
	domain := ""

	secure := false
	httpOnly := true

	var sameSite http.SameSite
	if appEnv == "production" {
		secure = true
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	c.SetSameSite(sameSite)
	c.SetCookie("token", tokenString, maxAge, "/", domain, secure, httpOnly)
}
