package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-tracker/internal/api/http"
	"github.com/spec-kit/employee-tracker/internal/api/http/handlers"
	"github.com/spec-kit/employee-tracker/internal/cli"
	"github.com/spec-kit/employee-tracker/internal/config"
	"github.com/spec-kit/employee-tracker/internal/events"
	"github.com/spec-kit/employee-tracker/internal/observability"
	"github.com/spec-kit/employee-tracker/internal/persistence"
	"github.com/spec-kit/employee-tracker/internal/repository"
	"github.com/spec-kit/employee-tracker/internal/service"
	"github.com/spec-kit/employee-tracker/internal/worker"
)

func main() {
	os.Exit(execute(newRootCmd(os.Stdin, os.Stdout, os.Stderr), os.Stderr))
}

// loggedError marks a failure already written to the structured log.
type loggedError struct {
	err error
}

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

// execute runs cmd and returns the process exit code. Failures that happen
// before the logger exists are printed to errOut.
func execute(cmd *cobra.Command, errOut io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var logged loggedError
	if !errors.As(err, &logged) {
		fmt.Fprintln(errOut, "employee-tracker:", err)
	}
	return 1
}

type flagValues struct {
	dsn         string
	logLevel    string
	applySchema bool
	healthAddr  string
	redisAddr   string
}

func newRootCmd(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *cobra.Command {
	flags := &flagValues{}

	cmd := &cobra.Command{
		Use:           "employee-tracker",
		Short:         "Manage departments, roles and employees from the terminal",
		Long:          `employee-tracker is an interactive menu for viewing and adding departments, roles and employees stored in PostgreSQL, and for moving employees between roles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyFlags(cmd, flags, cfg)

			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return run(cmd.Context(), cfg, logger, cli.NewSurveyPrompter(in, out, errOut), out)
		},
	}

	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "PostgreSQL connection string (overrides POSTGRES_DSN)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	cmd.Flags().BoolVar(&flags.applySchema, "apply-schema", false, "create missing tables before showing the menu")
	cmd.Flags().StringVar(&flags.healthAddr, "health-addr", "", "serve /health/live and /health/ready on this address")
	cmd.Flags().StringVar(&flags.redisAddr, "redis-addr", "", "append audit events to a Redis stream at this address")

	return cmd
}

func applyFlags(cmd *cobra.Command, flags *flagValues, cfg *config.Config) {
	if cmd.Flags().Changed("dsn") {
		cfg.Postgres.DSN = flags.dsn
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.Level = flags.logLevel
	}
	if cmd.Flags().Changed("apply-schema") {
		cfg.Postgres.ApplySchema = flags.applySchema
	}
	if cmd.Flags().Changed("health-addr") {
		cfg.Health.Addr = flags.healthAddr
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.Redis.Addr = flags.redisAddr
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, prompter cli.Prompter, out io.Writer) error {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return loggedError{fmt.Errorf("connect postgres: %w", err)}
	}
	defer pg.Close()

	if cfg.Postgres.ApplySchema {
		if err := persistence.ApplySchema(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Error("failed to apply schema", zap.Error(err))
			return loggedError{err}
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var sink service.AuditSink
	if redis != nil {
		sink = redis
	}
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, sink))

	pool := pg.PoolHandle()
	directory := service.NewDirectoryService(service.DirectoryDependencies{
		DepartmentRepo: repository.NewDepartmentRepository(pool),
		RoleRepo:       repository.NewRoleRepository(pool),
		EmployeeRepo:   repository.NewEmployeeRepository(pool),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	if cfg.Health.Addr != "" {
		deps := []handlers.Dependency{{Name: "postgres", Pinger: pg}}
		if redis != nil {
			deps = append(deps, handlers.Dependency{Name: "redis", Pinger: redis})
		}
		app := httptransport.NewProbeApp(logger, handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps...))
		go func() {
			if err := app.Listen(cfg.Health.Addr); err != nil {
				logger.Error("health listener stopped", zap.Error(err))
			}
		}()
		defer app.Shutdown() //nolint:errcheck
	}

	cli.NewDispatcher(directory, prompter, out, logger, observability.NewMetrics()).Run(ctx)
	logger.Debug("bye")
	return nil
}
