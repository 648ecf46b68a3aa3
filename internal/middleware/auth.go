package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentledger/internal/domain"
	"rentledger/internal/pkg/jwt"
	"rentledger/internal/pkg/response"
)

// UserLoader resolves the user behind a session token.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SessionAuth requires a valid session cookie whose user still exists.
// It stores user_id and user_email in the gin context.
func SessionAuth(jwtService *jwt.Service, users UserLoader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Next()
	}
}
