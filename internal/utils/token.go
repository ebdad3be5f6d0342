package utils // package utils provides helper functions for agent token creation and key hashing

import (
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
    "golang.org/x/crypto/bcrypt"   // bcrypt for hashing provisioning keys
)

// AgentToken represents a signed JWT presented by a capture agent when
// reporting ingest jobs.  The Token field contains the JWT string and
// Exp its UTC expiration time.  Agent tokens are issued out of band
// during agent provisioning; the ingest endpoints only verify them.
type AgentToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAgentToken builds and signs an HS256 JWT for a capture agent.  The
// JWT carries the agent id as subject, a fixed "agent" role claim that
// the AgentAuth middleware requires, plus exp and iat.
func NewAgentToken(secret, agentID string, ttl time.Duration) (AgentToken, error) {
    exp := time.Now().UTC().Add(ttl)
    claims := jwt.MapClaims{
        "sub":  agentID,
        "role": "agent",
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AgentToken{}, err
    }
    return AgentToken{Token: signed, Exp: exp}, nil
}

// VerifyAgentToken parses a raw agent JWT and returns the agent id.  It
// enforces the HS256 signing method and the "agent" role claim, the
// same checks the middleware applies.
func VerifyAgentToken(secret, raw string) (string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        return "", err
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return "", jwt.ErrTokenInvalidClaims
    }
    if role, _ := claims["role"].(string); role != "agent" {
        return "", jwt.ErrTokenInvalidClaims
    }
    agentID, _ := claims["sub"].(string)
    if agentID == "" {
        return "", jwt.ErrTokenInvalidSubject
    }
    return agentID, nil
}

// HashAgentKey hashes an agent provisioning key with bcrypt.  Only the
// hash is stored; the plain key is shown once at provisioning time.
func HashAgentKey(key string, cost int) (string, error) {
    if cost == 0 {
        cost = bcrypt.DefaultCost
    }
    h, err := bcrypt.GenerateFromPassword([]byte(key), cost)
    if err != nil {
        return "", err
    }
    return string(h), nil
}

// CheckAgentKey compares a presented provisioning key against its
// stored bcrypt hash.
func CheckAgentKey(hash, key string) bool {
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
