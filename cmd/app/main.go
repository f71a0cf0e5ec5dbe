package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/tui"
	"github.com/milesync/mscoach/internal/util"
	"github.com/milesync/mscoach/internal/voice"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "mscoach is interactive and needs a terminal")
		os.Exit(1)
	}

	// 1. Load configuration and any cached credentials.
	cfg, err := config.Load()
	util.MustSucceed("load config", err)
	tui.SetTheme(cfg.Theme)

	client := api.New(cfg.BaseURL, config.HTTPTimeout)

	// 2. Probe a cached token. A stale or revoked token just means we
	// fall through to the login screen.
	ctx := context.Background()
	var user *models.User
	if token := config.LoadToken(); token != "" {
		client.SetToken(token)
		me, err := client.Me(ctx)
		if err == nil {
			user = &me
		} else {
			if api.IsAuthError(err) {
				util.LogError("clear stale token", config.ClearToken())
			}
			client.SetToken("")
		}
	}

	// 3. Voice capture is optional: no transcriber configured means the
	// feature reports itself unavailable instead of failing.
	var rec voice.Recognizer
	if r := voice.NewCommandRecognizer(cfg.Transcriber); r != nil {
		rec = r
	}
	cap := voice.NewCapture(rec)

	model := tui.NewMainModel(ctx, client, cap, user)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
