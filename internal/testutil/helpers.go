package testutil

import (
	"testing"
	"time"

	"github.com/fitbook/fitbook/internal/utils"
	"github.com/google/uuid"
)

// BearerToken issues a short-lived token for the user and fails the test on
// error.
func BearerToken(t *testing.T, userID uuid.UUID, secret string) string {
	token, err := utils.GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return "Bearer " + token
}
