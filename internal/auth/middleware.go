package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/bkit-solutions/LMS-sub000/internal/dto"
)

const principalKey = "auth.principal"

// Middleware extracts and verifies the bearer token, storing the principal
// in the gin context. Requests without a resolvable identity get a 401.
func Middleware(parser *TokenParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		principal, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Token verification failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token"})
			return
		}
		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

// RequireStaff rejects learner principals; used on authoring routes.
func RequireStaff() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := FromContext(ctx)
		if !ok || principal.Role.IsLearner() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Staff role required"})
			return
		}
		ctx.Next()
	}
}

// FromContext returns the principal stored by Middleware.
func FromContext(ctx *gin.Context) (*Principal, bool) {
	v, exists := ctx.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*Principal)
	return principal, ok
}
