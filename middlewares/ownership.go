package middlewares

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

// ContextRole reads the role set by AuthMiddleware. Missing or foreign
// values come back as the zero Role, which no check accepts.
func ContextRole(c *gin.Context) models.Role {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}

// ContextUserID reads the authenticated user id set by AuthMiddleware.
func ContextUserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// RequireRoles rejects the request with 403 unless the caller holds one
// of the given roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := ContextRole(c)
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient permissions"))
		c.Abort()
	}
}

// OwnerOrAdmin gates a /:param route to the resource owner or an admin.
func OwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid id"))
			c.Abort()
			return
		}

		if ContextRole(c) == models.RoleAdmin {
			c.Next()
			return
		}
		if ContextUserID(c) != uint(targetID) {
			utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to access this resource"))
			c.Abort()
			return
		}
		c.Next()
	}
}
