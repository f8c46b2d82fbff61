package auth

import (
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func newTestService() *Service {
	return NewService([]string{"roy", "lomba", "gaal"}, "test-secret", time.Hour)
}

func TestAuthenticateIssuesToken(t *testing.T) {
	svc := newTestService()

	signed, err := svc.Authenticate("kima", "lomba")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token parse error: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		t.Fatalf("token claims invalid: %+v", token.Claims)
	}
	if claims["sub"] != "kima" {
		t.Fatalf("sub = %v, want kima", claims["sub"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("exp claim missing: %+v", claims)
	}
	if time.Unix(int64(exp), 0).Before(time.Now().Add(30 * time.Minute)) {
		t.Fatal("token expires too soon for a one hour TTL")
	}
}

func TestAuthenticateCredentialIsCaseInsensitive(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Authenticate("kima", "LOMBA"); err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	tests := []struct {
		name     string
		svc      *Service
		username string
		password string
	}{
		{name: "unknown credential", svc: newTestService(), username: "kima", password: "wrong"},
		{name: "empty credential", svc: newTestService(), username: "kima", password: ""},
		{name: "empty username", svc: newTestService(), username: "", password: "lomba"},
		{name: "missing secret", svc: NewService([]string{"lomba"}, "", time.Hour), username: "kima", password: "lomba"},
		{name: "nil service", svc: nil, username: "kima", password: "lomba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.Authenticate(tt.username, tt.password); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
