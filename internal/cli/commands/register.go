package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Зарегистрироваться и сразу войти" }
func (registerCmd) Usage() string       { return "register <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	req := credentialsRequest{Email: args[0], Password: args[1]}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/auth/signup"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusCreated {
		ar, err := persistAuth(cfg, body)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Registered as %s\n", ar.User.Email)
		return nil
	}
	if resp.StatusCode == http.StatusConflict {
		return errors.New("email already registered")
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(registerCmd{}) }
