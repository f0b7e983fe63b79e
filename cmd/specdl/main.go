// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the specdl CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/specdl/internal/fetch"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the specdl command tree. Each call uses its own viper
// instance so flags, environment, and config file are resolved per run.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "specdl (-s LIST | -f FILE) [-d DIR] [-t doc|pdf]",
		Short: "Bulk download 3GPP technical specifications",
		Long: `specdl downloads versioned 3GPP technical specifications in parallel.

With -t doc, zipped Word documents are fetched from the 3GPP archive and
unpacked into the download directory. With -t pdf, the published PDFs are
fetched from the ETSI deliverables tree.

Specs are given inline as series.number.major.tech.editorial, separated by
commas (-s 22.278.15.4.0,22.280.15.3.0), or in a file with one spec per line
written as series.number v major.tech.editorial (22.278v15.4.0).`,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.StringP("speclst", "s", "", "comma-separated specs, e.g. 22.278.15.4.0,22.280.15.3.0")
	flags.StringP("file", "f", "", "file with one spec per line, e.g. 22.278v15.4.0 (.yaml files hold a specs: list)")
	flags.StringP("downloadpath", "d", fetch.DefaultDownloadPath, "directory to download into (created if missing)")
	flags.StringP("doctype", "t", "pdf", "document type: doc (3GPP zip) or pdf (ETSI)")
	flags.IntP("concurrency", "c", 0, "maximum parallel downloads (0 = one per spec)")
	flags.Duration("timeout", 0, "HTTP request timeout (0 = none)")
	cmd.MarkFlagsMutuallyExclusive("speclst", "file")
	cmd.MarkFlagsOneRequired("speclst", "file")

	cmd.PersistentFlags().String("config", "", "config file (default: ./specdl.yaml or ~/.config/specdl/specdl.yaml)")

	for key, flag := range map[string]string{
		"download_path": "downloadpath",
		"doctype":       "doctype",
		"concurrency":   "concurrency",
		"timeout":       "timeout",
	} {
		v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// initConfig loads the config file and environment into v. An explicit
// --config file must exist; the default locations are optional.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetDefault("user_agent", fetch.DefaultUserAgent)
	v.SetDefault("doc_base_url", fetch.DefaultDocBaseURL)
	v.SetDefault("pdf_base_url", fetch.DefaultPDFBaseURL)

	v.SetEnvPrefix("SPECDL")
	v.AutomaticEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
		return nil
	}

	v.SetConfigName("specdl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "specdl"))
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	case !errors.As(err, &notFound):
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
