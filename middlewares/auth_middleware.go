package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/models"
	"github.com/yeremiapane/gastro-os/utils"
)

const (
	ContextUserID       = "userID"
	ContextRole         = "role"
	ContextRestaurantID = "restaurantID"
	ContextToken        = "token"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid authorization format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if !authorize(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// authorize parses the token and stores its claims on the context.
func authorize(c *gin.Context, tokenString string) bool {
	claims, err := utils.ParseToken(tokenString)
	if err != nil || claims == nil {
		return false
	}
	if claims.UserID == 0 || claims.RestaurantID == 0 {
		return false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, models.NormalizeRole(claims.Role))
	c.Set(ContextRestaurantID, claims.RestaurantID)
	c.Set(ContextToken, tokenString)
	return true
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func CurrentRole(c *gin.Context) string {
	return models.NormalizeRole(c.GetString(ContextRole))
}

// Scope is the tenant scope of the authenticated request. It fails
// validation when the request carried no restaurant.
func Scope(c *gin.Context) floorplan.Scope {
	return floorplan.NewScope(c.Request.Context(), c.GetUint(ContextRestaurantID))
}
