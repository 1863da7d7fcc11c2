package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"

	"catidle/internal/config"
	"catidle/internal/loop"
	"catidle/internal/metrics"
	"catidle/internal/pet"
	"catidle/internal/storage"
	srv "catidle/internal/server"
	"catidle/internal/ui"
)

var (
	configPath string
	savePath   string
	dbDSN      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catidle",
		Short:         "catidle - an idle cat that lives in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a yaml, json or toml config file")
	rootCmd.PersistentFlags().StringVar(&savePath, "save", "", "Path to the save file (default ~/.config/catidle/save.json)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "Postgres DSN; stores the save in a database instead of a file")

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(configCmd())
	return rootCmd
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := storage.Open(cmd.Context(), dbDSN, savePath)
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(logPath(store), "catidle")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	model := ui.NewModel(pet.NewEngine(cfg, store))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			cfg := loadConfig()
			store, err := storage.Open(cmd.Context(), dbDSN, savePath)
			if err != nil {
				return err
			}

			events := srv.NewEventLog(srv.DefaultEventCapacity)
			recorder := metrics.NewRecorder()
			engine := pet.NewEngine(cfg, store, pet.WithNotifier(events), pet.WithNotifier(recorder))
			runner := loop.NewRunner(engine)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- runner.Run(ctx) }()

			h := srv.Handler{Runner: runner, Events: events, Metrics: recorder}
			s := server.Default(server.WithHostPorts(addr))
			h.RegisterRoutes(s)

			log.Printf("catidle server listening on %s", addr)
			s.Spin()

			cancel()
			return <-done
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved cat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store, err := storage.Open(cmd.Context(), dbDSN, savePath)
			if err != nil {
				return err
			}
			data, err := store.Read()
			if errors.Is(err, pet.ErrNoSave) {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved cat yet. Run `catidle play` to adopt one.")
				return nil
			}
			if err != nil {
				return err
			}
			rec, err := pet.DecodeRecord(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderStatus(rec, cfg))
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over with a fresh cat",
		RunE: func(cmd *cobra.Command, args []string) error {
			wipe, _ := cmd.Flags().GetBool("wipe")
			store, err := storage.Open(cmd.Context(), dbDSN, savePath)
			if err != nil {
				return err
			}
			if wipe {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Save deleted.")
				return nil
			}

			engine := pet.NewEngine(loadConfig(), store)
			engine.Restart()
			if err := engine.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "A fresh cat is waiting for you.")
			return nil
		},
	}
	cmd.Flags().Bool("wipe", false, "Delete the save instead of writing a fresh one")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != string(config.FormatYAML) && format != string(config.FormatTOML) {
				return fmt.Errorf("unknown format %q (want yaml or toml)", format)
			}
			data, err := config.Marshal(loadConfig(), config.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("format", string(config.FormatYAML), "Output format: yaml or toml")
	return cmd
}

// loadConfig reads --config, falling back to defaults on any error
func loadConfig() pet.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Error loading config: %v. Using defaults.", err)
		return pet.DefaultConfig()
	}
	return cfg
}

// logPath keeps the log next to the save file so the TUI stays clean
func logPath(store storage.Store) string {
	if fs, ok := store.(*storage.FileSlot); ok {
		return filepath.Join(filepath.Dir(fs.Path), "catidle.log")
	}
	return filepath.Join(os.TempDir(), "catidle.log")
}
