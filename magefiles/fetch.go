//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Fetch groups targets that run the built CLI against the live archives.
type Fetch mg.Namespace

// sampleSpecs is a small Release 15 set used for smoke runs.
const sampleSpecs = "22.278.15.4.0,22.280.15.3.0,22.179.15.1.0"

// PDF downloads the sample specs from ETSI as PDF.
func (Fetch) PDF() error {
	mg.Deps(Build, Init)
	return run("pdf")
}

// Doc downloads the sample specs from the 3GPP archive and unpacks them.
func (Fetch) Doc() error {
	mg.Deps(Build, Init)
	return run("doc")
}

func run(docType string) error {
	dir := os.Getenv("SPECDL_DOWNLOAD_PATH")
	if dir == "" {
		dir = filepath.Join(downloadDir, docType)
	}
	return sh.RunV(filepath.Join(binDir, binName), "-s", sampleSpecs, "-t", docType, "-d", dir)
}
