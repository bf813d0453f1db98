// Package main provides ecoctl, the operator CLI for the Eco Impact backend.
// It migrates the database, loads seed data and runs the batch jobs the API
// reads from.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ecoimpact/backend/config"
	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/infra/db"
	"github.com/ecoimpact/backend/internal/infra/dependency"
	"github.com/ecoimpact/backend/internal/infra/seed"
	"github.com/ecoimpact/backend/internal/integration/email"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ecoctl"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Operate the Eco Impact backend",
		Long: `ecoctl migrates the database, seeds demo data, imports transaction
exports, refreshes the monthly leaderboard and mails coaching digests.

Configuration is read from the same environment variables as the API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		importCmd(),
		scoreCmd(),
		leaderboardCmd(),
		digestCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				slog.Info("schema is up to date")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, transactions and goals from a seed file",
		Long: `Load a YAML seed file. Without --file the embedded demo data is used.
Existing users and transaction ids are left untouched, so seeding twice is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   *seed.File
				err error
			)
			if file == "" {
				f, err = seed.Demo()
			} else {
				f, err = seed.Load(file)
			}
			if err != nil {
				return err
			}

			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				report, err := injector.Seeder.Apply(ctx, f)
				if err != nil {
					return err
				}
				fmt.Printf("users: %d created, %d skipped\n", report.UsersCreated, report.UsersSkipped)
				fmt.Printf("transactions: %d imported, %d rejected\n", report.TransactionsImported, report.TransactionsRejected)
				fmt.Printf("goals: %d created\n", report.GoalsCreated)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file path (YAML)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		userID string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV transaction export for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer in.Close()

			raws, err := seed.ReadTransactionsCSV(in)
			if err != nil {
				return err
			}

			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				output, err := injector.ImportTransactions.Execute(ctx, transaction.ImportTransactionsInput{
					UserID:       userID,
					Transactions: raws,
				})
				if err != nil {
					return err
				}
				fmt.Printf("imported %d, rejected %d\n", len(output.Imported), len(output.Rejected))
				for _, r := range output.Rejected {
					fmt.Printf("  line %d (%s): %v\n", r.Index+2, r.ID, r.Err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id that owns the transactions")
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file with id, name, category_id, amount and date columns")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func scoreCmd() *cobra.Command {
	var (
		userID string
		month  string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print a user's eco score as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				output, err := injector.GetScore.Execute(ctx, scoring.GetScoreInput{
					UserID: userID,
					Month:  month,
					Days:   days,
				})
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(dto.ToScoreResponse(output))
			})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM, defaults to the current month")
	cmd.Flags().IntVar(&days, "days", 0, "Rolling window in days instead of a calendar month")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func leaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Manage the monthly leaderboard",
	}

	var month string
	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute every user's leaderboard row for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				output, err := injector.RefreshLeaderboard.Execute(ctx, leaderboard.RefreshLeaderboardInput{Month: month})
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d users refreshed, %d skipped\n", output.Period.Label, output.Refreshed, len(output.Skipped))
				return nil
			})
		},
	}
	refresh.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM, defaults to the current month")

	cmd.AddCommand(refresh)
	return cmd
}

func digestCmd() *cobra.Command {
	var (
		weeks   int
		userIDs []string
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email each user their open coaching suggestions",
		Long: `Email each user the coaching suggestions they have not acknowledged.
Messages go through Resend when RESEND_API_KEY is set and are logged otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd.Context(), func(ctx context.Context, injector *dependency.Injector) error {
				output, err := injector.SendDigest.Execute(ctx, coaching.SendDigestInput{
					Weeks:   weeks,
					UserIDs: userIDs,
				})
				if err != nil {
					return err
				}
				fmt.Printf("digests: %d sent, %d skipped, %d failed\n", output.Sent, len(output.Skipped), len(output.Failed))
				for userID, reason := range output.Failed {
					fmt.Printf("  %s: %s\n", userID, reason)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 0, "Weeks of history to coach on, defaults to ECO_COACHING_WEEKS")
	cmd.Flags().StringSliceVar(&userIDs, "user", nil, "Only send to these user ids")
	return cmd
}

// withInjector connects to the database, applies migrations and runs fn with
// a fully wired injector. Optional collaborators of the API stay disabled.
func withInjector(parent context.Context, fn func(ctx context.Context, injector *dependency.Injector) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}

	opts := dependency.Options{}
	if cfg.Email.ResendAPIKey != "" {
		opts.EmailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	injector, err := dependency.NewInjector(cfg, database, opts)
	if err != nil {
		return err
	}
	return fn(ctx, injector)
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
