// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads batches of 3GPP technical specifications, either
// as zipped Word documents from the 3GPP archive or as PDFs from ETSI.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/specdl/internal/httputil"
	"github.com/pdiddy/specdl/internal/unpack"
	"github.com/pdiddy/specdl/pkg/types"
)

const (
	// DefaultDownloadPath is used when no download directory is configured.
	DefaultDownloadPath = "./download/"

	// DefaultUserAgent is a desktop browser string; the 3GPP server refuses
	// some non-browser agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/35.0.1916.47 Safari/537.36"
)

// JobResult is the outcome of fetching one spec.
type JobResult struct {
	Job Job

	// Found is true when the server returned the file and it was stored.
	Found bool

	// Extracted lists the files unpacked from a doc archive.
	Extracted []string

	// FetchErr explains why a spec was counted as not found.
	FetchErr error

	// UnpackErr is set when a doc archive was downloaded but could not be
	// extracted. The archive is left in place.
	UnpackErr error
}

// BatchResult holds the outcome of one DownloadSpecs call.
type BatchResult struct {
	Completed int
	NotFound  int
	Total     int

	// Results is in the same order as the requested specs.
	Results []JobResult
}

// HasFailures reports whether any spec was not found.
func (r BatchResult) HasFailures() bool {
	return r.NotFound > 0
}

// UnpackErrors returns the extraction errors of the batch.
func (r BatchResult) UnpackErrors() []error {
	var errs []error
	for _, jr := range r.Results {
		if jr.UnpackErr != nil {
			errs = append(errs, jr.UnpackErr)
		}
	}
	return errs
}

// Fetcher downloads specs into a single directory.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	out    *syncWriter
}

// New returns a Fetcher writing status lines to w. Empty UserAgent and
// DownloadPath fields of cfg are filled with the defaults.
func New(client *http.Client, cfg types.FetchConfig, w io.Writer) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = DefaultDownloadPath
	}
	return &Fetcher{client: client, cfg: cfg, out: &syncWriter{w: w}}
}

// PrepareDir creates the download directory. An existing directory is not
// an error.
func (f *Fetcher) PrepareDir() error {
	dir := f.cfg.DownloadPath
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintf(f.out, "Directory %s already exists\n", dir)
		return nil
	case err == nil:
		return fmt.Errorf("download path %s exists and is not a directory", dir)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking download path %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	fmt.Fprintf(f.out, "Directory %s Created\n", dir)
	return nil
}

// DownloadSpecs fetches every spec in the given format and waits for all of
// them. Each spec runs in its own goroutine; with Concurrency > 0 at most
// that many run at once. A spec that cannot be fetched is counted as not
// found and never stops the others. The only error returned is for an
// invalid docType, in which case nothing is fetched.
func (f *Fetcher) DownloadSpecs(ctx context.Context, specs []types.SpecID, docType types.DocType) (BatchResult, error) {
	if _, err := types.ParseDocType(string(docType)); err != nil {
		fmt.Fprintf(f.out, "Invalid download type (%s) specified\n", docType)
		return BatchResult{}, err
	}

	progress := newProgress(len(specs), f.out)
	results := make([]JobResult, len(specs))

	var g errgroup.Group
	if f.cfg.Concurrency > 0 {
		g.SetLimit(f.cfg.Concurrency)
	}
	for i, spec := range specs {
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, spec, docType, progress)
			return nil
		})
	}
	g.Wait()

	completed, notFound, total := progress.Snapshot()
	return BatchResult{
		Completed: completed,
		NotFound:  notFound,
		Total:     total,
		Results:   results,
	}, nil
}

// fetchOne downloads a single spec, unpacks doc archives, and records the
// outcome in progress once the file is on disk.
func (f *Fetcher) fetchOne(ctx context.Context, spec types.SpecID, docType types.DocType, progress *Progress) JobResult {
	job, err := Resolve(docType, spec, f.cfg)
	if err != nil {
		fmt.Fprintf(f.out, "file not found: %s (%v)\n", spec, err)
		progress.Record(false)
		return JobResult{Job: Job{Spec: spec}, FetchErr: err}
	}
	res := JobResult{Job: job}

	dest := filepath.Join(f.cfg.DownloadPath, job.File)
	if err := f.download(ctx, job.URL, dest); err != nil {
		fmt.Fprintf(f.out, "file not found: %s\n", job.URL)
		res.FetchErr = err
		progress.Record(false)
		return res
	}
	fmt.Fprintf(f.out, "Url: %s\n", job.URL)
	res.Found = true

	if docType == types.DocTypeDoc {
		extracted, err := unpack.Zip(ctx, dest, f.cfg.DownloadPath)
		if err != nil {
			fmt.Fprintf(f.out, "extraction failed: %s (%v)\n", job.File, err)
			res.UnpackErr = fmt.Errorf("unpacking %s: %w", job.File, err)
		} else {
			res.Extracted = extracted
			if err := os.Remove(dest); err != nil {
				fmt.Fprintf(f.out, "  warning: could not remove %s: %v\n", job.File, err)
			}
		}
	}

	progress.Record(true)
	return res
}

// download streams url into destPath through a temporary file in the same
// directory, renamed into place once the body is fully written.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	resp, err := httputil.Get(ctx, f.client, url, f.cfg.UserAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".specdl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
