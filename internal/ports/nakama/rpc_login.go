package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sankhadeeproy007/naga-poker/internal/app/auth"
	"github.com/sankhadeeproy007/naga-poker/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// LoginRequest is the credential check payload. Username is the player's chosen
// identity; password must be one of the shared credentials on the allow-list.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse reports the outcome and, on success, a signed session token.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
	Message  string `json:"message,omitempty"`
}

func rpcLogin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req LoginRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	secret := config.GetTokenSecret()
	if secret == "" {
		if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
			secret = env["naga_token_secret"]
		}
	}

	service := auth.NewService(
		config.GetSharedPasswords(),
		secret,
		time.Duration(config.GetTokenTTLSeconds())*time.Second,
	)

	token, err := service.Authenticate(req.Username, req.Password)
	if err != nil {
		logger.Warn("Login: Rejected attempt for username %q: %v", req.Username, err)
		resp, _ := json.Marshal(LoginResponse{Success: false, Message: "Invalid player name"})
		return string(resp), nil
	}

	resp, err := json.Marshal(LoginResponse{Success: true, Username: req.Username, Token: token})
	if err != nil {
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}
	return string(resp), nil
}
