package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/cli/auth"
	"recollect/internal/config"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	} `json:"user"`
}

// persistAuth сохраняет токен и id пользователя из ответа сервера.
func persistAuth(cfg *config.Config, body []byte) (*authResponse, error) {
	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if ar.Token == "" {
		return nil, errors.New("no token in response")
	}
	if err := auth.SaveToken(ar.Token, cfg.TokenFile); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	if err := auth.SaveUserID(ar.User.UserID); err != nil {
		return nil, fmt.Errorf("saving user id: %w", err)
	}
	return &ar, nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти и сохранить auth-токен" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	req := credentialsRequest{Email: args[0], Password: args[1]}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/auth/login"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		ar, err := persistAuth(cfg, body)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Logged in as %s\n", ar.User.Email)
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(loginCmd{}) }
