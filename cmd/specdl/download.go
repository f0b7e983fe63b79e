package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/specdl/internal/fetch"
	"github.com/pdiddy/specdl/internal/speclist"
	"github.com/pdiddy/specdl/pkg/types"
)

// runDownload parses the requested specs, prepares the download directory,
// and runs the batch. Specs that are not found do not make the command fail.
func runDownload(cmd *cobra.Command, v *viper.Viper) error {
	specs, err := loadSpecs(cmd)
	if err != nil {
		return err
	}

	var cfg types.FetchConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	out := cmd.OutOrStdout()
	f := fetch.New(client, cfg, out)
	if err := f.PrepareDir(); err != nil {
		return err
	}

	result, err := f.DownloadSpecs(cmd.Context(), specs, types.DocType(v.GetString("doctype")))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nBatch summary: %d downloaded, %d not found (total: %d)\n",
		result.Completed, result.NotFound, result.Total)
	if errs := result.UnpackErrors(); len(errs) > 0 {
		fmt.Fprintf(out, "%d archive(s) could not be extracted\n", len(errs))
	}
	return nil
}

// loadSpecs reads specs from whichever of --speclst or --file was given.
// Cobra's flag groups guarantee exactly one of them is set.
func loadSpecs(cmd *cobra.Command) ([]types.SpecID, error) {
	var (
		specs []types.SpecID
		err   error
	)
	if cmd.Flags().Changed("file") {
		path, _ := cmd.Flags().GetString("file")
		specs, err = speclist.ParseFile(path)
	} else {
		list, _ := cmd.Flags().GetString("speclst")
		specs, err = speclist.ParseList(list)
	}
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, errors.New("no spec identifiers given")
	}
	return specs, nil
}
