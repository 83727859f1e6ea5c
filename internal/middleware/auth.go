package middleware

import (
	"context"
	"net/http"
	"strings"

	"lrbook/internal/domain"
	"lrbook/internal/pkg/jwt"
	"lrbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxAgentID  = "agent_id"
	ctxRole     = "role"
	ctxIdentity = "agent_identity"
)

// AgentLookup reloads the agent behind a token so deactivation and location
// changes take effect before the token expires.
type AgentLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
}

// JWTAuth validates the bearer token and stores the agent identity on the
// context. When agents is nil the token claims are trusted as-is.
func JWTAuth(tokens *jwt.Service, agents AgentLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code, msg := bearerToken(c)
		if raw == "" {
			response.Abort(c, http.StatusUnauthorized, code, msg)
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		identity := domain.AgentIdentity{
			ID:       claims.AgentID,
			Name:     claims.Name,
			Location: claims.Location,
			Role:     domain.AgentRole(claims.Role),
		}

		if agents != nil {
			agent, err := agents.GetByID(c.Request.Context(), claims.AgentID)
			if err != nil || !agent.IsActive {
				response.Abort(c, http.StatusUnauthorized, "AGENT_INACTIVE", "Agent account is not active")
				return
			}
			identity = agent.Identity()
		}

		c.Set(ctxAgentID, identity.ID)
		c.Set(ctxRole, string(identity.Role))
		c.Set(ctxIdentity, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token, code, msg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		// browsers cannot set headers on a websocket handshake
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if t := c.Query("token"); t != "" {
				return t, "", ""
			}
		}
		return "", "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}
	return strings.TrimSpace(parts[1]), "", ""
}

// Identity returns the authenticated agent set by JWTAuth.
func Identity(c *gin.Context) (domain.AgentIdentity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return domain.AgentIdentity{}, false
	}
	id, ok := v.(domain.AgentIdentity)
	return id, ok
}
