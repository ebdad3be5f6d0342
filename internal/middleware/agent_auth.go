package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/utils"
)

// AgentAuth returns an Echo middleware that validates the Bearer token
// presented by an external capture agent and injects the agent id into
// the request context.  Interactive user authentication is handled by
// an upstream gateway; this middleware only guards the ingest surface
// that agents report to.  The provided secret must match the one used
// when issuing agent tokens.  Handlers can read the caller via
// `c.Get("agent_id")`.
func AgentAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // VerifyAgentToken enforces HS256, the "agent" role claim
            // and a non-empty subject.
            agentID, err := utils.VerifyAgentToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid agent token"})
            }

            c.Set("agent_id", agentID)
            return next(c)
        }
    }
}
