package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ticketboard/internal/config"
	"ticketboard/internal/database"
	"ticketboard/internal/server"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newLogger(level string) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warnf("unknown LOG_LEVEL %q, using info", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func serveCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			if migrateFirst {
				if err := database.MigrateUp(cfg.MigrateURL()); err != nil {
					return fmt.Errorf("❌ migration failed: %w", err)
				}
				logger.Info("✅ Migrations applied")
			}

			s, err := server.Init(cfg, logger)
			if err != nil {
				return fmt.Errorf("❌ server initialization failed: %w", err)
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back schema migrations",
		Long: `Apply or roll back the embedded SQL migrations.

Examples:
  ticketboard migrate up
  ticketboard migrate down --steps 1`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
	}
	steps := cmd.Flags().Int("steps", 1, "number of migrations to roll back with down")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := newLogger(cfg.LogLevel)

		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		switch direction {
		case "up":
			if err := database.MigrateUp(cfg.MigrateURL()); err != nil {
				return err
			}
			logger.Info("✅ Migrations applied")
		case "down":
			if err := database.MigrateDown(cfg.MigrateURL(), *steps); err != nil {
				return err
			}
			logger.Infof("✅ Rolled back %d migration(s)", *steps)
		default:
			return fmt.Errorf("unknown direction %q, want up or down", direction)
		}
		return nil
	}
	return cmd
}

func notifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Send due-tomorrow reminders once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			s, err := server.Init(cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.Dispatcher.DispatchDueTomorrow(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "workspaces=%d sent=%d failed=%d\n", report.Workspaces, report.Sent, report.Failed)
			return nil
		},
	}
}

func rebalanceCmd() *cobra.Command {
	var workspaceID uint

	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Re-space ticket positions of one workspace, or of all with --workspace 0",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			s, err := server.Init(cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			ids := []uint{workspaceID}
			if workspaceID == 0 {
				if ids, err = s.Workspaces.ListIDs(ctx); err != nil {
					return err
				}
			}

			for _, id := range ids {
				placements, err := s.Tickets.RebalanceWorkspace(ctx, id)
				if err != nil {
					return fmt.Errorf("workspace %d: %w", id, err)
				}
				total := 0
				for _, p := range placements {
					total += len(p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "workspace %s: %d tickets rebalanced\n", strconv.FormatUint(uint64(id), 10), total)
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&workspaceID, "workspace", 0, "workspace id (0 rebalances every workspace)")
	return cmd
}

