package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/utils"
)

// ExchangeAgentToken handles POST /v1/agents/token.  A capture agent
// presents the shared provisioning key it was configured with and
// receives a signed short-lived token for the ingest endpoints.  Only
// the bcrypt hash of the provisioning key lives in the environment, so
// a leaked config cannot mint tokens.
func (h *AppHandler) ExchangeAgentToken(c echo.Context) error {
    if h.AgentProvisionKeyHash == "" {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "agent provisioning is disabled"})
    }

    var body struct {
        AgentID      string `json:"agent_id"`
        ProvisionKey string `json:"provision_key"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    agentID := strings.TrimSpace(body.AgentID)
    if agentID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "agent_id is required"})
    }
    if !utils.CheckAgentKey(h.AgentProvisionKeyHash, body.ProvisionKey) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid provisioning key"})
    }

    ttl := h.AgentTokenTTL
    if ttl <= 0 {
        ttl = 24 * time.Hour
    }
    tok, err := utils.NewAgentToken(h.AgentJWTSecret, agentID, ttl)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "token":      tok.Token,
        "expires_at": tok.Exp.Format(time.RFC3339),
    })
}
