package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parking-service/internal/auth"
	"parking-service/internal/domain/parking"
	"parking-service/internal/service"
)

const callerContextKey = "caller"

// AuthMiddleware verifies the bearer token and resolves it to a user
// record before any handler runs. Handlers read the caller from the gin
// context; a missing caller never reaches them.
func AuthMiddleware(tokens *auth.TokenManager, identity *service.IdentityService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("missing bearer token"))
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("invalid token"))
			return
		}

		caller, err := identity.ResolveCaller(c.Request.Context(), claims)
		if err != nil {
			log.Error().Err(err).Str("subject", claims.Subject).Msg("failed to resolve caller")
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse("internal error"))
			return
		}

		c.Set(callerContextKey, caller)
		c.Next()
	}
}

func callerFrom(c *gin.Context) *parking.User {
	value, ok := c.Get(callerContextKey)
	if !ok {
		return nil
	}
	caller, ok := value.(*parking.User)
	if !ok {
		return nil
	}
	return caller
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
