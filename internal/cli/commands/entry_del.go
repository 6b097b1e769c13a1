package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/cli/auth"
	"recollect/internal/config"
)

type entryDelCmd struct{}

func (entryDelCmd) Name() string        { return "entry-del" }
func (entryDelCmd) Description() string { return "Удалить запись вместе с media" }
func (entryDelCmd) Usage() string       { return "entry-del <id>" }

func (entryDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if _, err := strconv.ParseUint(args[0], 10, 32); err != nil {
		return ErrUsage
	}

	token, err := auth.LoadToken(cfg.TokenFile)
	if err != nil {
		return err
	}
	resp, body, err := api.Delete(ctx, apiURL(cfg, "/api/entries/"+args[0]), token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return errors.New("entry not found")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	fmt.Fprintln(Out, "Deleted")
	return nil
}

func init() { RegisterCmd(entryDelCmd{}) }
