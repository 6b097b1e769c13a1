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

type resetPasswordCmd struct{}

func (resetPasswordCmd) Name() string        { return "reset-password" }
func (resetPasswordCmd) Description() string { return "Сменить пароль (старым паролем)" }
func (resetPasswordCmd) Usage() string {
	return "reset-password <email> <old-password> <new-password>"
}

func (resetPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	req := map[string]string{
		"email":        args[0],
		"old_password": args[1],
		"new_password": args[2],
	}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/auth/reset-password"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		fmt.Fprintln(Out, "Password changed")
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(resetPasswordCmd{}) }
