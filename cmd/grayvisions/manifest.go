package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grayvisions/grayvisions/internal/docs"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest [dir]",
	Short: "Regenerate manifest.json for a documents folder",
	Long: `Scans dir (default: documents_dir from config) for PDF files and writes
manifest.json with a human title for each, in natural sort order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.DocumentsDir
		if len(args) == 1 {
			dir = args[0]
		}
		m, err := docs.Write(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d document(s) to %s\n",
			len(m.Documents), filepath.Join(dir, docs.ManifestName))
		return nil
	},
}
