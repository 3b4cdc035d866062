package main

import (
	"fmt"

	"github.com/lshigami/questree/database"
	"github.com/lshigami/questree/internal/cache"
	"github.com/lshigami/questree/internal/repository"
	"github.com/lshigami/questree/internal/seed"
	"github.com/lshigami/questree/internal/service"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create tests from a YAML definition file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		file, err := seed.Load(path)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("database handle: %w", err)
		}
		defer sqlDB.Close()
		if err := database.Migrate(db); err != nil {
			return err
		}

		testRepo := repository.NewTestRepository(db)
		trees := service.NewTreeService(testRepo, cache.NewNoopTreeCache(), cfg)
		admin := service.NewAdminTestService(testRepo, trees, db, cfg)

		ids, err := seed.Apply(cmd.Context(), admin, file)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d test(s): %v\n", len(ids), ids)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringP("file", "f", "tests.yaml", "YAML file with test definitions")
}
