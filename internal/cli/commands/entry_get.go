package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/cli/auth"
	"recollect/internal/config"
)

type entryGetCmd struct{}

func (entryGetCmd) Name() string        { return "entry" }
func (entryGetCmd) Description() string { return "Показать запись целиком" }
func (entryGetCmd) Usage() string       { return "entry <id>" }

func (entryGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/entries/"+args[0]), token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return errors.New("entry not found")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var e entryView
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "#%d  [%s]  %s\n", e.ID, e.Subject, e.EntryDate)
	if e.Title != "" {
		fmt.Fprintln(Out, e.Title)
	}
	fmt.Fprintln(Out, e.Content)
	for _, p := range e.MediaPaths {
		fmt.Fprintf(Out, "  media: %s\n", p)
	}
	return nil
}

func init() { RegisterCmd(entryGetCmd{}) }
