package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	util := NewJWTUtil("test-secret")

	token, err := util.GenerateToken("owner-1")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := util.ResolveUserID(token)
	if err != nil {
		t.Fatalf("ResolveUserID returned error: %v", err)
	}
	if userID != "owner-1" {
		t.Fatalf("ResolveUserID = %q, want owner-1", userID)
	}
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, err := NewJWTUtil("secret-a").GenerateToken("owner-1")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := NewJWTUtil("secret-b").ResolveUserID(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestJWTGarbageRejected(t *testing.T) {
	if _, err := NewJWTUtil("secret").ResolveUserID("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
