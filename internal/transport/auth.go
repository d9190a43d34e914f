package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nogmois/nana-back/internal/auth"
)

type ownerKey struct{}

// OwnerFromContext returns the owner ID from context, if present.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok && ownerID != ""
}

// WithOwner returns a copy of ctx carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// RequireOwner resolves the bearer token into an owner ID and rejects the
// request when that fails.
func RequireOwner(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.Request.Header)
		ownerID, err := resolver.ResolveOwner(c.Request.Context(), token)
		if err != nil || ownerID == "" {
			msg := "invalid bearer token"
			if token == "" {
				msg = "missing bearer token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Error: apiError{Message: msg, Code: codeUnauthorized},
			})
			return
		}
		c.Request = c.Request.WithContext(WithOwner(c.Request.Context(), ownerID))
		c.Next()
	}
}

func bearerToken(h http.Header) string {
	header := h.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func owner(c *gin.Context) string {
	id, _ := OwnerFromContext(c.Request.Context())
	return id
}
