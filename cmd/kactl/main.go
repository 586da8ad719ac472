// kactl is the operator tool for the kontrollavgift backend: it runs
// migrations, provisions employee accounts and renders stored receipts.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "time/tzdata"

	"github.com/SscSPs/kontrollavgift/internal/adapters/printer"
	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/services"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/platform/config"
	"github.com/SscSPs/kontrollavgift/internal/repositories/database/pgsql"
	"github.com/SscSPs/kontrollavgift/internal/repositories/memory"
	"github.com/SscSPs/kontrollavgift/pkg/database"
	"github.com/spf13/pflag"
)

const usage = `kactl manages a kontrollavgift backend.

Usage:
  kactl migrate up
  kactl migrate down [--steps N]
  kactl user add --email EMAIL --name NAME [--password PASSWORD]
  kactl render --id VIOLATION_ID [--url]

Configuration is read from the same environment and .env file as the server.
The password for "user add" may be given in KACTL_PASSWORD instead of --password.
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	switch args[0] {
	case "migrate":
		return runMigrate(cfg, args[1:], logger)
	case "user":
		if len(args) < 2 || args[1] != "add" {
			return errors.New(`unknown user command, expected "user add"`)
		}
		return runUserAdd(ctx, cfg, args[2:], stdout)
	case "render":
		return runRender(ctx, cfg, args[1:], stdout)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func runMigrate(cfg *config.Config, args []string, logger *slog.Logger) error {
	var steps int
	flagSet := pflag.NewFlagSet("kactl migrate", pflag.ContinueOnError)
	flagSet.IntVar(&steps, "steps", 1, "number of migrations to roll back")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	switch direction := flagSet.Arg(0); direction {
	case "up":
		return database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	case "down":
		if steps < 1 {
			return errors.New("--steps must be at least 1")
		}
		return database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps, logger)
	default:
		return fmt.Errorf("unknown migrate direction %q, expected up or down", direction)
	}
}

func runUserAdd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	var req dto.CreateUserRequest
	flagSet := pflag.NewFlagSet("kactl user add", pflag.ContinueOnError)
	flagSet.StringVar(&req.Email, "email", "", "employee email address")
	flagSet.StringVar(&req.Name, "name", "", "employee display name")
	flagSet.StringVar(&req.Password, "password", "", "initial password (or KACTL_PASSWORD)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if req.Password == "" {
		req.Password = os.Getenv("KACTL_PASSWORD")
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	repos := pgsql.NewRepositoryProvider(pool, memory.NewRevocationStore())
	user, err := services.NewUserService(repos.UserRepo).CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("an employee with email %s already exists", strings.ToLower(req.Email))
		}
		return err
	}
	fmt.Fprintf(stdout, "created employee %s (%s)\n", user.Email, user.UserID)
	return nil
}

func runRender(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	var id string
	var asURL bool
	flagSet := pflag.NewFlagSet("kactl render", pflag.ContinueOnError)
	flagSet.StringVar(&id, "id", "", "violation id")
	flagSet.BoolVar(&asURL, "url", false, "print the printer dispatch URL instead of the XML")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return errors.New("--id is required")
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	builder, err := services.NewTicketBuilder(cfg)
	if err != nil {
		return err
	}
	repos := pgsql.NewRepositoryProvider(pool, memory.NewRevocationStore())
	rec, err := repos.ViolationRepo.FindViolationByID(ctx, id)
	if err != nil {
		return fmt.Errorf("violation %s: %w", id, err)
	}
	doc := builder.BuildDocument(*rec)
	if asURL {
		doc = printer.NewTMAssistantBridge().Dispatch(doc, cfg.PrintReturnURL).URL
	}
	_, err = fmt.Fprintln(stdout, doc)
	return err
}
