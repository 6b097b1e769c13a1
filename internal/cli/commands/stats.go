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

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Статистика по записям" }
func (statsCmd) Usage() string       { return "stats" }

func (statsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := auth.LoadToken(cfg.TokenFile)
	if err != nil {
		return err
	}
	userID, err := auth.LoadUserID()
	if err != nil {
		return err
	}

	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/users/"+userID+"/stats"), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var stats struct {
		TotalEntries    int64 `json:"total_entries"`
		TotalSubjects   int64 `json:"total_subjects"`
		UniqueDays      int64 `json:"unique_days"`
		TotalCharacters int64 `json:"total_characters"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Записей:   %d\n", stats.TotalEntries)
	fmt.Fprintf(Out, "Предметов: %d\n", stats.TotalSubjects)
	fmt.Fprintf(Out, "Дней:      %d\n", stats.UniqueDays)
	fmt.Fprintf(Out, "Символов:  %d\n", stats.TotalCharacters)
	return nil
}

func init() { RegisterCmd(statsCmd{}) }
