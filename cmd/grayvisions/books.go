package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grayvisions/grayvisions/internal/books"
	"github.com/grayvisions/grayvisions/internal/db"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage the recommended-reading catalog",
}

var booksSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default catalog into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbh, err := db.Open(cmd.Context(), db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("db open failed: %w", err)
		}
		defer dbh.Close()

		n, err := books.Seed(cmd.Context(), books.NewSQLStore(dbh))
		if err != nil {
			return err
		}
		logger.Debug("seeded", zap.String("driver", cfg.DBDriver), zap.Int("books", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d book(s)\n", n)
		return nil
	},
}

func init() {
	booksCmd.AddCommand(booksSeedCmd)
}
