// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package main provides the commoncontent CLI: a content server plus
// supporting commands for importing markdown content.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veselosky/commoncontent/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "commoncontent",
	Short: "commoncontent serves structured web content",
	Long: `commoncontent is a multi-site content server. It publishes sections,
articles and landing pages with Open Graph metadata, schema.org JSON-LD,
RSS feeds and sitemaps. Configuration comes from COMMONCONTENT_* environment
variables; a .env file in the working directory is honored.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("commoncontent %s (commit: %s, built: %s)\n",
			info.Version, info.GitCommit, info.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
