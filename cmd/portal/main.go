// Entry point for the portal terminal client.
//
// Wiring order matters: config and logging first, then the session
// database, then the token source shared by both API clients, then the
// store, and finally the TUI program. The unauthorized hook is bound
// after the program exists so an expired session can interrupt whatever
// screen is showing.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"capital-portal/internal/api"
	"capital-portal/internal/config"
	"capital-portal/internal/logging"
	"capital-portal/internal/service"
	"capital-portal/internal/session"
	"capital-portal/internal/store"
	"capital-portal/internal/tui"
)

func main() {
	// A missing .env file is not an error; env overrides are optional.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitDataDir(homeDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing data directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.New(homeDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Info("portal session opened")

	sessions, err := session.Open(cfg.SessionPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}
	defer sessions.Close()

	var program *tea.Program
	tokens := api.NewTokenSource(sessions,
		api.WithTokenLogger(logger),
		api.OnUnauthorized(func() {
			if program != nil {
				program.Send(tui.SessionExpiredMsg{})
			}
		}),
	)
	if _, err := tokens.Initialize(); err != nil {
		logger.Warn("restore persisted token: %v", err)
	}

	resourceClient := api.NewClient(cfg.ResourceURL(), tokens, api.WithLogger(logger))
	authClient := api.NewClient(cfg.AuthURL(), tokens, api.WithLogger(logger))

	st := store.New(store.Services{
		Auth:         service.NewAuthService(authClient),
		Applications: service.NewApplicationService(resourceClient),
		Info:         service.NewInfoService(resourceClient),
		Admin:        service.NewAdminService(resourceClient),
	}, tokens, store.WithLogger(logger))

	app := tui.NewApp(st,
		tui.WithLogger(logger),
		tui.WithLogTail(logger),
		tui.WithRedirectStore(sessions),
	)
	program = tea.NewProgram(app, tea.WithAltScreen())
	st.SetOnChange(func() {
		// Repaint whenever any slice commits, including alert expiry.
		program.Send(struct{}{})
	})

	if _, err := program.Run(); err != nil {
		logger.Error("portal exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running portal: %v\n", err)
		os.Exit(1)
	}
	logger.Info("portal session closed")
}
