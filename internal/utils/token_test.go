package utils

import (
    "testing"
    "time"
)

func TestAgentTokenRoundTrip(t *testing.T) {
    tok, err := NewAgentToken("secret", "agent-7", time.Hour)
    if err != nil {
        t.Fatalf("new agent token: %v", err)
    }
    agentID, err := VerifyAgentToken("secret", tok.Token)
    if err != nil {
        t.Fatalf("verify agent token: %v", err)
    }
    if agentID != "agent-7" {
        t.Fatalf("got agent id %q, want agent-7", agentID)
    }
}

func TestVerifyAgentTokenWrongSecret(t *testing.T) {
    tok, err := NewAgentToken("secret", "agent-7", time.Hour)
    if err != nil {
        t.Fatalf("new agent token: %v", err)
    }
    if _, err := VerifyAgentToken("other-secret", tok.Token); err == nil {
        t.Fatalf("token signed with a different secret must not verify")
    }
}

func TestVerifyAgentTokenExpired(t *testing.T) {
    tok, err := NewAgentToken("secret", "agent-7", -time.Minute)
    if err != nil {
        t.Fatalf("new agent token: %v", err)
    }
    if _, err := VerifyAgentToken("secret", tok.Token); err == nil {
        t.Fatalf("expired token must not verify")
    }
}

func TestAgentKeyHashing(t *testing.T) {
    hash, err := HashAgentKey("provision-key", 4) // low cost keeps the test fast
    if err != nil {
        t.Fatalf("hash agent key: %v", err)
    }
    if !CheckAgentKey(hash, "provision-key") {
        t.Fatalf("correct key should match its hash")
    }
    if CheckAgentKey(hash, "wrong-key") {
        t.Fatalf("wrong key must not match")
    }
}
