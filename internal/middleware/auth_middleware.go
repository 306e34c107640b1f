package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/koolkhan8586/hr-management/internal/domain"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CodeInvalidToken = "INVALID_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, CodeTokenExpired, "Token has expired")
				return
			}
			response.AbortError(c, http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, CodeInvalidToken, "Invalid token claims")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.AbortError(c, http.StatusUnauthorized, CodeInvalidToken, "User ID not found in token")
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.AbortError(c, http.StatusUnauthorized, CodeInvalidToken, "Employee ID not found in token")
			return
		}

		// refresh token tidak boleh dipakai untuk akses API
		if typ, _ := claims["typ"].(string); typ == "refresh" {
			response.AbortError(c, http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			role = domain.RoleEmployee
		}

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.AbortError(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message)
	}
}

// IsSelfOrAdmin dipakai handler untuk resource milik satu karyawan.
func IsSelfOrAdmin(c *gin.Context, employeeID string) bool {
	if c.GetString("role") == domain.RoleAdmin {
		return true
	}
	self := c.GetString("employee_id")
	return self != "" && self == employeeID
}
