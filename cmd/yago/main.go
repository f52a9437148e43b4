package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yagomarket/cmd/yago/ui"
	"yagomarket/internal/api"
	"yagomarket/internal/cart"
	"yagomarket/internal/catalog"
	"yagomarket/internal/config"
	"yagomarket/internal/logging"
	"yagomarket/internal/profile"
	"yagomarket/internal/session"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildDeps wires the shared services every command uses.
func buildDeps() (ui.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return ui.Deps{}, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		return ui.Deps{}, fmt.Errorf("open log: %w", err)
	}

	sessions, err := session.New()
	if err != nil {
		return ui.Deps{}, fmt.Errorf("open session store: %w", err)
	}

	client := api.New(api.Config{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.RequestTimeout,
		MaxInFlight: cfg.API.MaxInFlight,
	}, sessions, logger)

	theme := ui.DarkTheme()
	if cfg.UI.Theme == "light" {
		theme = ui.LightTheme()
	}

	return ui.Deps{
		Client:   client,
		Sessions: sessions,
		Cart:     cart.New(client, logger),
		Profiles: profile.NewService(client, logger),
		Resolver: catalog.NewResolver(client, logger),
		Cfg:      cfg,
		Logger:   logger,
		Styles:   ui.NewStyles(theme),
	}, nil
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "yago",
		Short: "Terminal storefront for the Yago Market backend",
		Long: `yago browses the Yago Market catalog from the terminal: products,
categories, cart, and account management against a running backend.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps()
			if err != nil {
				return err
			}
			defer deps.Logger.Sync()

			deps.Logger.Info("starting ui",
				zap.String("version", version),
				zap.String("api_url", deps.Client.BaseURL()))

			program := tea.NewProgram(newAppModel(deps), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	root.AddCommand(loginCmd(), logoutCmd(), whoamiCmd(), versionCmd())
	return root
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps()
			if err != nil {
				return err
			}
			defer deps.Logger.Sync()

			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), deps.Cfg.API.RequestTimeout)
			defer cancel()

			sess, err := deps.Client.Login(ctx, email, password)
			if err != nil {
				if apiErr, ok := api.AsAPIError(err); ok && apiErr.Message != "" {
					return fmt.Errorf("login failed: %s", apiErr.Message)
				}
				return fmt.Errorf("login failed: %w", err)
			}
			if err := deps.Sessions.SetSession(sess.Token, sess.User); err != nil {
				return fmt.Errorf("store session: %w", err)
			}
			fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := session.New()
			if err != nil {
				return err
			}
			if !sessions.Authenticated() {
				fmt.Println("Not logged in.")
				return nil
			}
			if err := sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := session.New()
			if err != nil {
				return err
			}
			sess, ok := sessions.Current()
			if !ok {
				fmt.Println("Not logged in.")
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", sess.User.Name, sess.User.Email, sess.User.Role)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("yago " + version)
		},
	}
}
