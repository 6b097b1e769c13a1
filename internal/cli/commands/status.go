package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"recollect/internal/cli/api"
	"recollect/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Проверить доступность сервера" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/health"), "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var hr struct {
		Status       string `json:"status"`
		CloudStorage bool   `json:"cloud_storage"`
		OCRAvailable bool   `json:"ocr_available"`
	}
	if err := json.Unmarshal(body, &hr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Status: %s (cloud=%v, ocr=%v)\n", hr.Status, hr.CloudStorage, hr.OCRAvailable)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
