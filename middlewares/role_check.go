package middlewares

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/models"
	"github.com/yeremiapane/gastro-os/utils"
)

type pathRule struct {
	prefix string
	roles  []string
}

var pathRules = []pathRule{
	{prefix: "/admin", roles: []string{models.RoleOwner, models.RoleManager}},
	{prefix: "/pos", roles: []string{models.RoleOwner, models.RoleManager, models.RoleWaiter}},
	{prefix: "/kitchen", roles: []string{models.RoleOwner, models.RoleManager, models.RoleCook}},
}

// CanAccess reports whether role may use path. Paths outside the gated
// prefixes are open to every authenticated role.
func CanAccess(role, path string) bool {
	role = models.NormalizeRole(role)
	for _, rule := range pathRules {
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return slices.Contains(rule.roles, role)
		}
	}
	return true
}

// PathAccess gates routes by the prefix table above. It must run after
// AuthMiddleware.
func PathAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextRole); !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role := CurrentRole(c)
		if !CanAccess(role, c.Request.URL.Path) {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access denied", role))
			c.Abort()
			return
		}
		c.Next()
	}
}
