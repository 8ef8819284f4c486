package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/urfave/cli/v2"

	"hisaab/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "apply or roll back the HisaabKeeper schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Value: "db/migrations", Usage: "migrations directory"},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					if err := ignoreNoChange(m.Up()); err != nil {
						return fmt.Errorf("migration up failed: %w", err)
					}
					log.Println("migrations applied successfully")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "revert all migrations",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					if err := ignoreNoChange(m.Down()); err != nil {
						return fmt.Errorf("migration down failed: %w", err)
					}
					log.Println("migrations reverted successfully")
					return nil
				}),
			},
			{
				Name:      "steps",
				Usage:     "apply N migrations (negative to revert)",
				ArgsUsage: "N",
				Action: withMigrate(func(m *migrate.Migrate, c *cli.Context) error {
					var n int
					if _, err := fmt.Sscan(c.Args().First(), &n); err != nil {
						return fmt.Errorf("steps requires a number argument")
					}
					if err := ignoreNoChange(m.Steps(n)); err != nil {
						return fmt.Errorf("migration steps failed: %w", err)
					}
					log.Printf("applied %d migration steps", n)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "set the version without running migrations, clearing the dirty flag",
				ArgsUsage: "VERSION",
				Action: withMigrate(func(m *migrate.Migrate, c *cli.Context) error {
					var v int
					if _, err := fmt.Sscan(c.Args().First(), &v); err != nil {
						return fmt.Errorf("force requires a version argument")
					}
					if err := m.Force(v); err != nil {
						return fmt.Errorf("force failed: %w", err)
					}
					log.Printf("forced version %d", v)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						fmt.Println("version: none")
						return nil
					}
					if err != nil {
						return fmt.Errorf("failed to get version: %w", err)
					}
					fmt.Printf("version: %d, dirty: %v\n", version, dirty)
					return nil
				}),
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withMigrate(fn func(*migrate.Migrate, *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		m, err := migrate.New("file://"+c.String("path"), cfg.DB.DSN())
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer m.Close()
		return fn(m, c)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
