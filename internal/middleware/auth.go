package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/auth"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/constants"
	apierrors "github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/errors"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth validates the Authorization bearer token and loads the user ID
// into the gin context. The token's user must still exist; tokens issued
// before an account deletion stop working immediately. All failure modes
// produce the same 401 so nothing leaks about which part was wrong.
func RequireAuth(tokens *auth.TokenManager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.AuthorizationHeader)
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != constants.BearerPrefix {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if _, err := userRepo.FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
