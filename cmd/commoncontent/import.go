// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veselosky/commoncontent/internal/config"
	"github.com/veselosky/commoncontent/internal/importer"
	"github.com/veselosky/commoncontent/internal/store"
)

var (
	importSite    string
	importSection string
)

var importCmd = &cobra.Command{
	Use:   "import [path]...",
	Short: "Import markdown files as articles",
	Long: `Import reads markdown files with YAML front matter and stores them as
articles in the named section (created if needed). Arguments may be
files or directories; directories are walked for .md files. Documents
marked draft are stored withheld.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if importSite == "" {
			importSite = cfg.SiteDomain
		}

		db, err := store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		ctx := context.Background()
		im := importer.New(store.New(db))

		total := 0
		var files []string
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return err
			}
			if info.IsDir() {
				n, err := im.ImportDir(ctx, importSite, importSection, arg)
				if err != nil {
					return fmt.Errorf("importing %s: %w", arg, err)
				}
				total += n
				continue
			}
			files = append(files, arg)
		}
		if len(files) > 0 {
			n, err := im.ImportFiles(ctx, importSite, importSection, files)
			if err != nil {
				return fmt.Errorf("importing files: %w", err)
			}
			total += n
		}

		fmt.Printf("Imported %d article(s) into section %q\n", total, importSection)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSite, "site", "", "site domain or ID (default: configured site domain)")
	importCmd.Flags().StringVar(&importSection, "section", "Articles", "section title to file articles under")
}
