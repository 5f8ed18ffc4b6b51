package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m-fukuda/examly/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(db, cfg.Database.Database); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Println("Migrations are up to date.")
			return nil
		},
	}
}
