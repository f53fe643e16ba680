package main

import (
	"context"
	"errors"
	"log"
	"os"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "seed",
		Usage: "Create a workspace user in the configured record store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Usage:   "The username to create",
				Sources: cli.EnvVars("SEED_USERNAME"),
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "The password for the new user",
				Sources: cli.EnvVars("SEED_PASSWORD"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return seedUser(ctx, c.String("username"), c.String("password"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		color.Red("Seed failed: %v", err)
		os.Exit(1)
	}
}

func seedUser(ctx context.Context, username, password string) error {
	cfg := config.Load()
	if cfg.Store.Driver == "" || cfg.Store.Driver == "memory" {
		color.Yellow("STORE_DRIVER is memory: the user only lives until this process exits")
	}

	req := &dto.RegisterUserRequest{Username: username, Password: password}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	store, err := bootstrap.NewRecordStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	users := service.NewUserService(store, nil, logger.NewNopLogger())
	user, err := users.Register(ctx, req)
	if errors.Is(err, service.ErrConflict) {
		color.Yellow("User %q already exists, nothing to do", username)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("Created user %s (%s)", user.Username, user.Id)
	color.Green("Seed completed")
	return nil
}
