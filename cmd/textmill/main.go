// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the textmill CLI, a batch converter
// that turns directory trees of PDF documents into mirrored trees of plain
// text. The engine lives in internal/; this layer only assembles
// configuration from flags and prints results.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the textmill CLI.
var rootCmd = &cobra.Command{
	Use:   "textmill",
	Short: "Convert trees of PDF documents to plain text",
	Long: `textmill recursively converts every PDF under an input directory into a
text file under an output directory, preserving the directory structure.
Extraction runs across a pool of concurrent workers; a file that fails to
parse is logged and counted, never aborts the run.

Two extraction strategies are used per document: a MuPDF-backed primary,
with a pure-Go fallback for documents where the primary output is
near-empty (typically scanned or malformed files).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./textmill.yaml or ~/.config/textmill/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textmill")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textmill"))
		}
	}

	viper.SetEnvPrefix("TEXTMILL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
