package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func loginCtx(secret string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, map[string]string{
		"naga_token_secret": secret,
	})
}

func TestRpcLoginSuccess(t *testing.T) {
	payload, _ := json.Marshal(LoginRequest{Username: "kima", Password: "lomba"})

	out, err := rpcLogin(loginCtx("test-secret"), noopLogger{}, nil, nil, string(payload))
	if err != nil {
		t.Fatalf("rpc error: %v", err)
	}

	var resp LoginResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response %q: %v", out, err)
	}
	if !resp.Success || resp.Username != "kima" || resp.Token == "" {
		t.Fatalf("response = %+v", resp)
	}

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims := token.Claims.(jwt.MapClaims); claims["sub"] != "kima" {
		t.Fatalf("sub = %v, want kima", claims["sub"])
	}
}

func TestRpcLoginRejectsBadCredential(t *testing.T) {
	payload, _ := json.Marshal(LoginRequest{Username: "kima", Password: "wrong"})

	out, err := rpcLogin(loginCtx("test-secret"), noopLogger{}, nil, nil, string(payload))
	if err != nil {
		t.Fatalf("rpc error: %v", err)
	}

	var resp LoginResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response %q: %v", out, err)
	}
	if resp.Success || resp.Token != "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Message != "Invalid player name" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestRpcLoginMalformedPayload(t *testing.T) {
	if _, err := rpcLogin(loginCtx("test-secret"), noopLogger{}, nil, nil, "{not json"); err == nil {
		t.Fatal("expected an error for malformed payload")
	}
}
