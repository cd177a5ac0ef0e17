package main

import (
	"errors"

	"github.com/SAP-F-2025/interview-service/internal/cache"
	"github.com/SAP-F-2025/interview-service/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the question bank file into the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.UsesDatabase() {
			return errors.New("seed needs DATABASE_URL")
		}

		a := &application{cfg: cfg, logger: logger}
		defer a.close()

		bank, err := loadBank(cfg.QuestionBankPath)
		if err != nil {
			return err
		}
		if err := a.openDatabase(); err != nil {
			return err
		}

		var c cache.CacheService
		if cfg.SessionStore == "redis" {
			if c, err = a.openCache(); err != nil {
				logger.Warn("difficulty cache unavailable, skipping invalidation", "error", err)
				c = nil
			}
		}

		repo := postgres.NewQuestionPostgreSQL(a.db, c)
		n, err := repo.Seed(cmd.Context(), bank.All())
		if err != nil {
			return err
		}
		total, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("question bank seeded", "path", cfg.QuestionBankPath, "imported", n, "total", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
