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

// entryView — запись в ответах сервера.
type entryView struct {
	ID         uint     `json:"id"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Content    string   `json:"content"`
	EntryDate  string   `json:"entry_date"`
	MediaPaths []string `json:"media_paths"`
}

func printEntries(list []entryView) {
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return
	}
	for _, e := range list {
		title := e.Title
		if title == "" {
			title = "(без названия)"
		}
		media := ""
		if len(e.MediaPaths) > 0 {
			media = fmt.Sprintf("  media=%d", len(e.MediaPaths))
		}
		fmt.Fprintf(Out, "- #%d  [%s] %s  %s%s\n", e.ID, e.Subject, title, e.EntryDate, media)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
}

type entriesCmd struct{}

func (entriesCmd) Name() string        { return "entries" }
func (entriesCmd) Description() string { return "Показать все записи" }
func (entriesCmd) Usage() string       { return "entries" }

func (entriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := auth.LoadToken(cfg.TokenFile)
	if err != nil {
		return err
	}
	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/entries"), token)
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

func init() { RegisterCmd(entriesCmd{}) }
