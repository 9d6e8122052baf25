package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/pkg/token"
)

const claimsKey = "claims"

// RequireAuth validates the Bearer token and stores the session claims on
// the context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("missing bearer token"))
			return
		}

		claims, err := token.Parse(cfg.Auth.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("invalid or expired token"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireMaster rejects everything but an approved master session.
func RequireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != token.RoleMaster {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("master role required"))
			return
		}
		c.Next()
	}
}

// ProjectScope resolves the :projectID path param and pins site sessions to
// their own project. Master sessions may address any project.
func ProjectScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("projectID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
			return
		}

		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}
		if claims.Role == token.RoleSite {
			if claims.ProjectID == nil || *claims.ProjectID != projectID {
				c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("token is bound to another project"))
				return
			}
		}

		c.Set("project_id", projectID.String())
		c.Set("projectID", projectID)
		c.Next()
	}
}

// GetClaims returns the session claims set by RequireAuth, or nil.
func GetClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

// GetProjectID returns the project scope set by ProjectScope.
func GetProjectID(c *gin.Context) uuid.UUID {
	v, _ := c.Get("projectID")
	id, _ := v.(uuid.UUID)
	return id
}
