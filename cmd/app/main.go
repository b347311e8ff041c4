package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/migrations"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// systemUserID stamps work done by jobs and operator commands.
var systemUserID = kernel.MustUUIDFromString("00000000-0000-4000-8000-000000000001")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "dispatch",
		Short:         "Installation order dispatch and company wallets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	load := func() (cmd.Config, zerolog.Logger, error) {
		cfg, err := cmd.LoadConfig(envFile)
		if err != nil {
			return cmd.Config{}, zerolog.Nop(), err
		}
		return cfg, logger.New(cfg.AppEnv), nil
	}

	root.AddCommand(
		serveCmd(load),
		migrateCmd(load),
		penaltyRulesCmd(load),
		reconcileCmd(load),
		tokenCmd(load),
	)
	return root
}

type loader func() (cmd.Config, zerolog.Logger, error)

func openApp(cfg cmd.Config, log zerolog.Logger) (*cmd.CompositionRoot, error) {
	db, err := postgres.Open(cfg.DBDSN, postgres.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return cmd.NewCompositionRoot(cfg, db, log)
}

func systemActor() actor.Actor {
	a, err := actor.NewDispatcher(systemUserID)
	if err != nil {
		panic(err)
	}
	return a
}

func serveCmd(load loader) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			if migrate {
				if err = migrations.Up(cfg.DBDSN); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			app, err := openApp(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := app.CreateHTTPServer()
			if err != nil {
				return err
			}
			e, err := server.Echo(ctx)
			if err != nil {
				return err
			}

			jobManager := app.CreateJobManager(systemActor())
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.HTTPAddr()).Msg("http server listening")
				if err := e.Start(cfg.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err = <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return c
}

func migrateCmd(load loader) *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	c.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, _, err := load()
				if err != nil {
					return err
				}
				if err = migrations.Up(cfg.DBDSN); err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), "schema is up to date")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, _, err := load()
				if err != nil {
					return err
				}
				if err = migrations.Down(cfg.DBDSN); err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), "schema dropped")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, _, err := load()
				if err != nil {
					return err
				}
				status, err := migrations.Version(cfg.DBDSN)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "version %d (dirty: %t)\n", status.Version, status.Dirty)
				return nil
			},
		},
	)
	return c
}

func penaltyRulesCmd(load loader) *cobra.Command {
	c := &cobra.Command{
		Use:   "penalty-rules",
		Short: "Administer the penalty rule table",
	}

	c.AddCommand(&cobra.Command{
		Use:   "import <file.toml>",
		Short: "Replace the penalty rule table with the rules in a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			specs, err := cmd.DecodePenaltyRules(f)
			if err != nil {
				return err
			}
			command, err := commands.NewReplacePenaltyRulesCommand(specs)
			if err != nil {
				return err
			}

			app, err := openApp(cfg, log)
			if err != nil {
				return err
			}
			if err = app.CreateReplacePenaltyRulesCommandHandler().Handle(c.Context(), command); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "imported %d penalty rules\n", len(specs))
			return nil
		},
	})
	return c
}

func reconcileCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare stored company balances with their ledger sums",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			app, err := openApp(cfg, log)
			if err != nil {
				return err
			}

			query, err := queries.NewReconcileBalancesQuery(systemActor())
			if err != nil {
				return err
			}
			report, err := app.CreateReconcileBalancesQueryHandler().Handle(c.Context(), query)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMPANY\tSTORED\tLEDGER\tDIFFERENCE")
			for _, b := range report.Companies {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.CompanyName, b.Stored, b.Computed, b.Difference())
			}
			if err = w.Flush(); err != nil {
				return err
			}

			if n := len(report.Drifting()); n > 0 {
				return fmt.Errorf("%d companies drift from their ledger", n)
			}
			return nil
		},
	}
}

func tokenCmd(load loader) *cobra.Command {
	var (
		role      string
		userID    string
		companyID string
		ttl       time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, _, err := load()
			if err != nil {
				return err
			}
			auth, err := httpadapter.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer)
			if err != nil {
				return err
			}

			user := kernel.NewUUID()
			if userID != "" {
				if user, err = kernel.UUIDFromString(userID); err != nil {
					return err
				}
			}

			var who actor.Actor
			switch role {
			case "dispatcher":
				who, err = actor.NewDispatcher(user)
			case "company":
				var company kernel.UUID
				if company, err = kernel.UUIDFromString(companyID); err != nil {
					return fmt.Errorf("--company: %w", err)
				}
				who, err = actor.NewCompanyUser(user, company)
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			if err != nil {
				return err
			}

			token, err := auth.Issue(who, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().StringVar(&role, "role", "dispatcher", "dispatcher or company")
	c.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	c.Flags().StringVar(&companyID, "company", "", "company id for company users")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return c
}
