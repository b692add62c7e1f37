package team_services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// 32 random bytes, 64 hex characters after the scope prefix
const invitationTokenBytes = 32

func generateInvitationToken(prefix string) (string, error) {
	tokenBytes := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}

	return prefix + hex.EncodeToString(tokenBytes), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
