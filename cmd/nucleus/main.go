// Package main is the entry point for the nucleus server CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nucleus-app/nucleus/internal/ai/assistant"
	"github.com/nucleus-app/nucleus/internal/ai/memory"
	"github.com/nucleus-app/nucleus/internal/ai/openai"
	"github.com/nucleus-app/nucleus/internal/ai/provider"
	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/config"
	"github.com/nucleus-app/nucleus/internal/cron"
	"github.com/nucleus-app/nucleus/internal/server"
	"github.com/nucleus-app/nucleus/internal/store"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nucleus",
		Short:         "AI-powered life operating system backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("nucleus %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Nucleus API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				resolved, err := resolveConfigPath()
				if err != nil {
					return err
				}
				cfgPath = resolved
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			return run(cfg, logger)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			fmt.Printf("Configuration OK (bind: %s, database: %s)\n", cfg.Server.Bind, cfg.Database.Path)
			return nil
		},
	})
	return cmd
}

// run wires every subsystem and serves until SIGINT/SIGTERM.
func run(cfg *config.Config, logger *slog.Logger) error {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// AI failures never block startup; the system runs degraded instead.
	var vectors memory.VectorStore
	if chromem, err := memory.NewChromemStore(cfg.AI.Memory.Path); err != nil {
		logger.Error("vector store unavailable", "error", err)
	} else {
		vectors = chromem
		ctx := context.Background()
		if err := memory.EnsureCollection(ctx, vectors, cfg.AI.Memory.Collection, cfg.AI.Memory.Dimension); err != nil {
			logger.Error("memory collection provisioning failed", "error", err)
		}
	}

	var llm provider.LLM
	var embedder provider.Embedder
	if cfg.AI.OpenAI.APIKey != "" {
		client := openai.New(openai.Config{
			APIKey:         cfg.AI.OpenAI.APIKey,
			Model:          cfg.AI.OpenAI.Model,
			EmbeddingModel: cfg.AI.OpenAI.EmbeddingModel,
			BaseURL:        cfg.AI.OpenAI.BaseURL,
			Timeout:        cfg.AI.OpenAI.Timeout,
			Temperature:    cfg.AI.OpenAI.Temperature,
		})
		llm = client
		embedder = client
	} else {
		logger.Warn("no OpenAI API key configured, AI features disabled")
	}

	mem := memory.NewStore(embedder, vectors, cfg.AI.Memory.Collection, logger)
	asst := assistant.New(llm, mem, logger)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	srv := server.New(cfg.Server, st, issuer, asst, version, logger)

	scheduler := cron.NewScheduler(logger)
	if cfg.Scheduler.Enabled {
		if err := scheduler.RegisterJob(&cron.PantryExpiryJob{
			Store:        st,
			Memory:       mem,
			Logger:       logger,
			ScheduleExpr: cfg.Scheduler.ExpiryDigest,
		}); err != nil {
			return err
		}
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer func() { _ = scheduler.Stop() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = srv.Run(ctx)

	// Let in-flight memory writes land before the process exits.
	asst.Flush()
	return err
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/nucleus/nucleus.yaml → ./nucleus.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "nucleus", "nucleus.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "nucleus", "nucleus.yaml"))
	}

	candidates = append(candidates, "nucleus.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}
