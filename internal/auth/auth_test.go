package auth

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuth("test-signing-key")

	token, err := a.GenerateToken(42, RoleDispatcher)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserId != 42 {
		t.Errorf("UserId = %d, want 42", claims.UserId)
	}
	if claims.Role != RoleDispatcher {
		t.Errorf("Role = %q, want %q", claims.Role, RoleDispatcher)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token, err := NewAuth("key-one").GenerateToken(1, RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewAuth("key-two").ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := NewAuth("key").ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestAuthorized(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		allow []string
		want  bool
	}{
		{"matching role", RoleAdmin, []string{RoleAdmin}, true},
		{"one of several", RoleDispatcher, []string{RoleAdmin, RoleDispatcher}, true},
		{"wrong role", RoleOfficer, []string{RoleAdmin}, false},
		{"empty list", RoleOfficer, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Claims{Role: tt.role}
			if got := c.Authorized(tt.allow...); got != tt.want {
				t.Errorf("Authorized(%v) = %v, want %v", tt.allow, got, tt.want)
			}
		})
	}
}
