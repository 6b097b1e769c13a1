package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/cli/auth"
	"recollect/internal/config"
)

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Поиск по содержимому и названиям" }
func (searchCmd) Usage() string       { return "search <query>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	query := strings.Join(args, " ")

	token, err := auth.LoadToken(cfg.TokenFile)
	if err != nil {
		return err
	}
	userID, err := auth.LoadUserID()
	if err != nil {
		return err
	}

	endpoint := apiURL(cfg, "/api/users/"+userID+"/search") + "?q=" + url.QueryEscape(query)
	resp, body, err := api.Get(ctx, endpoint, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var list []entryView
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	printEntries(list)
	return nil
}

func init() { RegisterCmd(searchCmd{}) }
