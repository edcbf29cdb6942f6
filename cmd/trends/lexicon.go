package main

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/region-sentiment/internal/adapter/file"
	"github.com/spf13/cobra"
)

func newLexiconCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage the word sentiment lexicon",
	}
	cmd.AddCommand(newLexiconImportCmd(a))
	return cmd
}

func newLexiconImportCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the Postgres lexicon with the rows of a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.LexiconDSN == "" {
				return errors.New("LEXICON_DSN is required for lexicon import")
			}
			if from == "" {
				from = a.cfg.LexiconPath
			}
			lex, err := file.LoadLexicon(from)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.lexiconStore(ctx)
			if err != nil {
				return err
			}
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			n, err := store.Replace(ctx, lex)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words from %s\n", n, from)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "CSV file of word,score rows (default LEXICON_PATH)")
	return cmd
}
