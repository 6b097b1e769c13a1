package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/cli/auth"
	"recollect/internal/config"
)

type entryAddCmd struct{}

func (entryAddCmd) Name() string        { return "entry-add" }
func (entryAddCmd) Description() string { return "Добавить запись" }
func (entryAddCmd) Usage() string       { return "entry-add <content> [<title> [<subject>]]" }

func (entryAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return ErrUsage
	}
	payload := map[string]string{"content": args[0]}
	if len(args) >= 2 {
		payload["title"] = args[1]
	}
	if len(args) == 3 {
		payload["subject"] = args[2]
	}

	token, err := auth.LoadToken(cfg.TokenFile)
	if err != nil {
		return err
	}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/entries"), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var e entryView
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:      %d\n", e.ID)
	fmt.Fprintf(Out, "  subject: %s\n", e.Subject)
	if e.Title != "" {
		fmt.Fprintf(Out, "  title:   %s\n", e.Title)
	}
	return nil
}

func init() { RegisterCmd(entryAddCmd{}) }
